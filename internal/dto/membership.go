package dto

import (
	"time"

	"github.com/meduzzen/company-directory-api/internal/models"
)

// InvitationDTO represents a company invitation in API responses
type InvitationDTO struct {
	ID            uint64                  `json:"id"`
	CompanyID     uint64                  `json:"company_id"`
	InvitedUserID uint64                  `json:"invited_user_id"`
	Status        models.InvitationStatus `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
}

// MembershipRequestDTO represents a membership request in API responses
type MembershipRequestDTO struct {
	ID        uint64                         `json:"id"`
	CompanyID uint64                         `json:"company_id"`
	UserID    uint64                         `json:"user_id"`
	Status    models.MembershipRequestStatus `json:"status"`
	CreatedAt time.Time                      `json:"created_at"`
}

// MemberDTO represents a confirmed company member in API responses
type MemberDTO struct {
	ID        uint64    `json:"id"`
	CompanyID uint64    `json:"company_id"`
	UserID    uint64    `json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MembersListDTO pairs a member page with the total count
type MembersListDTO struct {
	Members []MemberDTO `json:"members"`
	Total   int64       `json:"total"`
}

// ToInvitationDTO converts an invitation model to its response DTO
func ToInvitationDTO(inv models.CompanyInvitation) InvitationDTO {
	return InvitationDTO{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		InvitedUserID: inv.InvitedUserID,
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvitationDTOs converts invitations to response DTOs
func ToInvitationDTOs(invitations []models.CompanyInvitation) []InvitationDTO {
	dtos := make([]InvitationDTO, len(invitations))
	for i, inv := range invitations {
		dtos[i] = ToInvitationDTO(inv)
	}
	return dtos
}

// ToMembershipRequestDTO converts a request model to its response DTO
func ToMembershipRequestDTO(req models.CompanyMembershipRequest) MembershipRequestDTO {
	return MembershipRequestDTO{
		ID:        req.ID,
		CompanyID: req.CompanyID,
		UserID:    req.UserID,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
}

// ToMembershipRequestDTOs converts requests to response DTOs
func ToMembershipRequestDTOs(requests []models.CompanyMembershipRequest) []MembershipRequestDTO {
	dtos := make([]MembershipRequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = ToMembershipRequestDTO(req)
	}
	return dtos
}

// ToMemberDTO converts a member model to its response DTO
func ToMemberDTO(member models.CompanyMember) MemberDTO {
	return MemberDTO{
		ID:        member.ID,
		CompanyID: member.CompanyID,
		UserID:    member.UserID,
		JoinedAt:  member.JoinedAt,
	}
}

// ToMembersListDTO converts a member page to the list response
func ToMembersListDTO(members []models.CompanyMember, total int64) MembersListDTO {
	dtos := make([]MemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToMemberDTO(member)
	}
	return MembersListDTO{Members: dtos, Total: total}
}
