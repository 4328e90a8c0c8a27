package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'RoomParticipant' links a room to either a human child or a synthetic AI
 * seat. ChildID is null exactly when IsAI is true; AI seats are not subject
 * to the single-room-per-child rule.
 */
type RoomParticipant struct {
	ID           string    `gorm:"primaryKey;size:36;not null" json:"id"`
	RoomID       string    `gorm:"size:36;not null;index:idx_room_participants_room;uniqueIndex:idx_room_participants_room_child" json:"room_id"`
	ChildID      *string   `gorm:"size:36;index:idx_room_participants_child;uniqueIndex:idx_room_participants_room_child" json:"child_id"`
	PlayerName   string    `gorm:"size:50;not null" json:"player_name"`
	PlayerAvatar string    `gorm:"size:10" json:"player_avatar"`
	IsAI         bool      `gorm:"default:false" json:"is_ai"`
	JoinedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"joined_at"`

	// Relationships
	GameRoom GameRoom      `gorm:"foreignKey:RoomID" json:"-"`
	Child    *ChildProfile `gorm:"foreignKey:ChildID" json:"-"`
}

func (p *RoomParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
