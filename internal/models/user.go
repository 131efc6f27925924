package models

import (
	"time"
)

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Age            *int      `json:"age"`
	PasswordHash   *string   `gorm:"type:varchar(255)" json:"-"`
	Auth0Sub       *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	Bio            string    `gorm:"type:text" json:"bio"`
	ProfilePicture string    `gorm:"type:varchar(512)" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Companies []Company `gorm:"foreignKey:OwnerID" json:"-"`
	Friends   []*User   `gorm:"many2many:friends;joinForeignKey:UserID;joinReferences:FriendID" json:"-"`
}
