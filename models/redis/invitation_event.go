package redis

import "time"

// InvitationEvent is the payload published on the invitation feed whenever a
// join_requests row is inserted. The socket gateway relays it to the child
// the request is addressed to.
type InvitationEvent struct {
	RequestID    string    `json:"request_id"`
	RoomID       string    `json:"room_id,omitempty"`
	RoomCode     string    `json:"room_code"`
	ChildID      string    `json:"child_id"`
	PlayerName   string    `json:"player_name"`
	PlayerAvatar string    `json:"player_avatar"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
