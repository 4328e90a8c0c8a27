package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'ChildProfile' is a player identity. RoomID is the back-reference to the
 * room the child currently sits in: non-null if and only if a matching
 * RoomParticipant row exists. It is only ever mutated by the room service.
 */
type ChildProfile struct {
	ID          string         `gorm:"primaryKey;size:36;not null" json:"id"`
	ParentEmail string         `gorm:"size:100;not null;index:idx_children_profiles_parent" json:"parent_id"`
	Name        string         `gorm:"size:50;not null" json:"name"`
	Avatar      string         `gorm:"size:10;default:'👤'" json:"avatar"`
	AgeGroup    string         `gorm:"size:20" json:"age_group"`
	RoomID      *string        `gorm:"size:36;index:idx_children_profiles_room" json:"room_id"`
	Progress    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"progress"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Relationships
	Participations []RoomParticipant `gorm:"foreignKey:ChildID" json:"-"`
	JoinRequests   []JoinRequest     `gorm:"foreignKey:ChildID" json:"-"`
}

// The table name predates the GORM pluralization convention
func (ChildProfile) TableName() string {
	return "children_profiles"
}

func (c *ChildProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
