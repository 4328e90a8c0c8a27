package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Friend' represents a friendship edge between two children. A pending row
 * is a friend request, an accepted row is an established friendship.
 */
type Friend struct {
	ID          string    `gorm:"primaryKey;size:36;not null" json:"id"`
	RequesterID string    `gorm:"size:36;not null;index:idx_friends_requester" json:"requester_id"`
	AddresseeID string    `gorm:"size:36;not null;index:idx_friends_addressee" json:"addressee_id"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Requester ChildProfile `gorm:"foreignKey:RequesterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Addressee ChildProfile `gorm:"foreignKey:AddresseeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// GORM hook to ensure a child cannot befriend themselves. Status-only
// updates run this hook on a zero-value model, so both ids must be set
// before the check applies.
func (f *Friend) BeforeSave(tx *gorm.DB) error {
	if f.RequesterID != "" && f.RequesterID == f.AddresseeID {
		return errors.New("cannot create a friendship with the same child")
	}
	return nil
}

func (f *Friend) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
