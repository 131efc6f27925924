package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type CompanyVisibility string

const (
	VisibilityHidden  CompanyVisibility = "hidden"
	VisibilityVisible CompanyVisibility = "visible"
)

// ServiceList stores a company's service tags as a JSON array column.
type ServiceList []string

func (s ServiceList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *ServiceList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for ServiceList: %T", value)
	}
}

type Company struct {
	ID          uint64            `gorm:"primarykey" json:"id"`
	Name        string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Location    string            `gorm:"type:varchar(255)" json:"location"`
	Employees   *int              `json:"employees"`
	Established *int              `json:"established"`
	Services    ServiceList       `gorm:"type:json" json:"services"`
	Visibility  CompanyVisibility `gorm:"type:varchar(20);not null;default:'hidden'" json:"visibility"`
	OwnerID     uint64            `gorm:"not null" json:"owner_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	Owner              User                       `gorm:"foreignKey:OwnerID" json:"-"`
	Members            []CompanyMember            `gorm:"foreignKey:CompanyID" json:"-"`
	Invitations        []CompanyInvitation        `gorm:"foreignKey:CompanyID" json:"-"`
	MembershipRequests []CompanyMembershipRequest `gorm:"foreignKey:CompanyID" json:"-"`
}
