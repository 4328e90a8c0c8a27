package rooms

import "errors"

// User-facing precondition errors. The dispatch controller returns these
// verbatim in the error field of the response envelope, so the wording is
// part of the client contract.
var (
	ErrChildNotFound         = errors.New("Child profile not found")
	ErrAlreadyInRoom         = errors.New("You are currently in another room. Please leave that room first.")
	ErrRoomNotFound          = errors.New("Room not found")
	ErrRoomNotAvailable      = errors.New("Room not found or not available")
	ErrRoomFull              = errors.New("Room is full")
	ErrRoomFullOrUnavailable = errors.New("Room is full or unavailable")
	ErrNoValidFriends        = errors.New("No valid friends found")
	ErrRequestNotFound       = errors.New("Request not found")
	ErrInvitationNotFound    = errors.New("Invitation not found or already processed")
	ErrNotRoomHost           = errors.New("Only the host can close the room")
	ErrNotInviteHost         = errors.New("Only the host can invite friends")
)

// IsUserError reports whether err is one of the precondition errors above,
// as opposed to a store failure that should be logged server-side.
func IsUserError(err error) bool {
	switch {
	case errors.Is(err, ErrChildNotFound),
		errors.Is(err, ErrAlreadyInRoom),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrRoomNotAvailable),
		errors.Is(err, ErrRoomFull),
		errors.Is(err, ErrRoomFullOrUnavailable),
		errors.Is(err, ErrNoValidFriends),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrInvitationNotFound),
		errors.Is(err, ErrNotRoomHost),
		errors.Is(err, ErrNotInviteHost):
		return true
	}
	return false
}
