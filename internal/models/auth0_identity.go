package models

import "time"

// Auth0Identity links a local user to an external identity provider subject.
type Auth0Identity struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	UserID        uint64    `gorm:"not null;uniqueIndex" json:"user_id"`
	Auth0Sub      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"auth0_sub"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
