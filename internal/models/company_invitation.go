package models

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationCancelled InvitationStatus = "cancelled"
)

// CompanyInvitation is an owner-initiated offer for a user to join a company.
// At most one pending invitation may exist per (company, invited user) pair,
// enforced by a partial unique index.
type CompanyInvitation struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	CompanyID     uint64           `gorm:"not null;index" json:"company_id"`
	InvitedUserID uint64           `gorm:"not null;index" json:"invited_user_id"`
	Status        InvitationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Relations
	Company     Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	InvitedUser User    `gorm:"foreignKey:InvitedUserID" json:"invited_user,omitempty"`
}
