package models

import "time"

type MembershipRequestStatus string

const (
	MembershipRequestPending   MembershipRequestStatus = "pending"
	MembershipRequestAccepted  MembershipRequestStatus = "accepted"
	MembershipRequestDeclined  MembershipRequestStatus = "declined"
	MembershipRequestCancelled MembershipRequestStatus = "cancelled"
)

// CompanyMembershipRequest is a user-initiated request to join a company.
// At most one pending request may exist per (company, user) pair, enforced by
// a partial unique index; the company owner never holds a request.
type CompanyMembershipRequest struct {
	ID        uint64                  `gorm:"primarykey" json:"id"`
	CompanyID uint64                  `gorm:"not null;index" json:"company_id"`
	UserID    uint64                  `gorm:"not null;index" json:"user_id"`
	Status    MembershipRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
