package utils

/**
 * This file contains utility functions to format the keys and channels for
 * Redis. It avoids having to call "fmt.Sprintf(...)" with the same format
 * string every time, potentially confusing the key format.
 */

import "fmt"

func FormatChildPresenceKey(childID string) string {
	return fmt.Sprintf("child:%s:online", childID)
}

func FormatInvitationInboxKey(childID string) string {
	return fmt.Sprintf("child:%s:invitations", childID)
}

// JoinRequestChannel is the pub/sub channel carrying join_requests inserts
func JoinRequestChannel() string {
	return "join_requests:new"
}
