package postgres

import (
	"time"
)

/*
 * 'User' is a parent account. It owns the children profiles created
 * under it.
 */
type User struct {
	Email            string    `gorm:"primaryKey;size:100;not null" json:"email"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	FullName         string    `gorm:"size:100" json:"full_name"`
	SubscriptionPlan string    `gorm:"size:30;default:'free'" json:"subscription_plan"`
	MemberSince      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"member_since"`

	// Relationship with the children profiles
	Children []ChildProfile `gorm:"foreignKey:ParentEmail;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
