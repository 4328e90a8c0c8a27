package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'JoinRequest' is a pending/approved/denied request for a child to join a
 * room. Host-sent invitations and guest-sent join requests both land here.
 * RoomID is nullable: guest join requests are created from the room code
 * alone (legacy path), invitations carry the room id as well.
 */
type JoinRequest struct {
	ID           string    `gorm:"primaryKey;size:36;not null" json:"id"`
	RoomID       *string   `gorm:"size:36;index:idx_join_requests_room" json:"room_id"`
	RoomCode     string    `gorm:"size:6;not null;index:idx_join_requests_code" json:"room_code"`
	ChildID      string    `gorm:"size:36;not null;index:idx_join_requests_child" json:"child_id"`
	PlayerName   string    `gorm:"size:50;not null" json:"player_name"`
	PlayerAvatar string    `gorm:"size:10" json:"player_avatar"`
	Status       string    `gorm:"size:20;default:'pending';index:idx_join_requests_status" json:"status"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	GameRoom *GameRoom    `gorm:"foreignKey:RoomID" json:"game_rooms,omitempty"`
	Child    ChildProfile `gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE" json:"-"`
}

func (j *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
