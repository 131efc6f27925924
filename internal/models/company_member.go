package models

import "time"

// CompanyMember is a confirmed membership. The company owner never has a row
// here; ownership is tracked on the company itself.
type CompanyMember struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CompanyID uint64    `gorm:"not null;uniqueIndex:idx_company_members_pair" json:"company_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_company_members_pair" json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
