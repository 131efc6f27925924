package services

import (
	"errors"
	"fmt"

	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/repository"
	"github.com/meduzzen/company-directory-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation is not pending")
	ErrInvitationExists     = errors.New("invitation already sent")
	ErrRequestNotFound      = errors.New("membership request not found")
	ErrRequestNotPending    = errors.New("membership request is not pending")
	ErrRequestExists        = errors.New("membership request already exists")
	ErrOwnerIsMember        = errors.New("company owner is already a member")
	ErrAlreadyMember        = errors.New("already a member of the company")
	ErrMemberNotFound       = errors.New("member not found in the company")
	ErrNotInvitedUser       = errors.New("not authorized to act on this invitation")
	ErrNotRequestAuthor     = errors.New("not authorized to act on this request")
	ErrNotOwner             = errors.New("not authorized to manage this company")
	ErrInvalidRequestAction = errors.New("invalid action")
)

// RequestAction names the owner's decision on a membership request.
type RequestAction string

const (
	RequestActionAccept  RequestAction = "accept"
	RequestActionDecline RequestAction = "decline"
)

// MembershipService governs how users and companies become associated: the
// invitation and membership-request state machines and the member rows both
// converge on.
//
// Both machines share one shape: pending -> accepted | declined (by the
// subject) or pending -> cancelled (by the initiator). Terminal states admit
// no further transitions; a new proposal after a terminal state is a new row.
type MembershipService struct {
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(companyRepo repository.CompanyRepository, membershipRepo repository.MembershipRepository) *MembershipService {
	return &MembershipService{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *MembershipService) findCompany(companyID uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// SendInvitation creates a pending invitation from the company owner to a user.
func (s *MembershipService) SendInvitation(companyID, invitedUserID uint64, actor *models.User) (*models.CompanyInvitation, error) {
	company, err := s.findCompany(companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}

	if _, err := s.membershipRepo.FindPendingInvitation(companyID, invitedUserID); err == nil {
		return nil, ErrInvitationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invitation: %w", err)
	}

	invitation := &models.CompanyInvitation{
		CompanyID:     companyID,
		InvitedUserID: invitedUserID,
		Status:        models.InvitationPending,
	}

	if err := s.membershipRepo.CreateInvitation(invitation); err != nil {
		// The partial unique index closes the window between the pre-check
		// and the insert.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrInvitationExists
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// CancelInvitation withdraws a pending invitation. Only the owner of the
// invitation's company may cancel, and only while the invitation is pending.
func (s *MembershipService) CancelInvitation(invitationID uint64, actor *models.User) (*models.CompanyInvitation, error) {
	invitation, err := s.membershipRepo.FindInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	company, err := s.findCompany(invitation.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}
	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}

	if err := s.membershipRepo.UpdateInvitationStatus(invitation, models.InvitationCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel invitation: %w", err)
	}

	return invitation, nil
}

// AcceptInvitation accepts a pending invitation addressed to the actor,
// creating the member row (if absent) and flipping the status atomically.
func (s *MembershipService) AcceptInvitation(invitationID uint64, actor *models.User) (*models.CompanyInvitation, error) {
	invitation, err := s.membershipRepo.FindInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	if invitation.InvitedUserID != actor.ID {
		return nil, ErrNotInvitedUser
	}
	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}

	if err := s.membershipRepo.AcceptInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	return invitation, nil
}

// DeclineInvitation declines a pending invitation addressed to the actor.
func (s *MembershipService) DeclineInvitation(invitationID uint64, actor *models.User) (*models.CompanyInvitation, error) {
	invitation, err := s.membershipRepo.FindInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	if invitation.InvitedUserID != actor.ID {
		return nil, ErrNotInvitedUser
	}
	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}

	if err := s.membershipRepo.UpdateInvitationStatus(invitation, models.InvitationDeclined); err != nil {
		return nil, fmt.Errorf("failed to decline invitation: %w", err)
	}

	return invitation, nil
}

// RequestMembership creates a pending membership request from the actor.
// The owner can never request; neither can an existing member.
func (s *MembershipService) RequestMembership(companyID uint64, actor *models.User) (*models.CompanyMembershipRequest, error) {
	company, err := s.findCompany(companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID == actor.ID {
		return nil, ErrOwnerIsMember
	}

	if _, err := s.membershipRepo.FindMember(companyID, actor.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if _, err := s.membershipRepo.FindPendingRequest(companyID, actor.ID); err == nil {
		return nil, ErrRequestExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending request: %w", err)
	}

	request := &models.CompanyMembershipRequest{
		CompanyID: companyID,
		UserID:    actor.ID,
		Status:    models.MembershipRequestPending,
	}

	if err := s.membershipRepo.CreateRequest(request); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrRequestExists
		}
		return nil, fmt.Errorf("failed to create membership request: %w", err)
	}

	return request, nil
}

// CancelMembershipRequest withdraws the actor's own pending request.
func (s *MembershipService) CancelMembershipRequest(requestID uint64, actor *models.User) (*models.CompanyMembershipRequest, error) {
	request, err := s.membershipRepo.FindRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find membership request: %w", err)
	}
	if request.UserID != actor.ID {
		return nil, ErrNotRequestAuthor
	}
	if request.Status != models.MembershipRequestPending {
		return nil, ErrRequestNotPending
	}

	if err := s.membershipRepo.UpdateRequestStatus(request, models.MembershipRequestCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel membership request: %w", err)
	}

	return request, nil
}

// HandleMembershipRequest accepts or declines a pending request. Only the
// owner of the request's company may decide; accept creates the member row
// and flips the status atomically.
func (s *MembershipService) HandleMembershipRequest(requestID uint64, action RequestAction, actor *models.User) (*models.CompanyMembershipRequest, error) {
	request, err := s.membershipRepo.FindRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find membership request: %w", err)
	}

	company, err := s.findCompany(request.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}
	if request.Status != models.MembershipRequestPending {
		return nil, ErrRequestNotPending
	}

	switch action {
	case RequestActionAccept:
		if err := s.membershipRepo.AcceptRequest(request); err != nil {
			return nil, fmt.Errorf("failed to accept membership request: %w", err)
		}
	case RequestActionDecline:
		if err := s.membershipRepo.UpdateRequestStatus(request, models.MembershipRequestDeclined); err != nil {
			return nil, fmt.Errorf("failed to decline membership request: %w", err)
		}
	default:
		return nil, ErrInvalidRequestAction
	}

	return request, nil
}

// RemoveMember removes another user's member row. Owner-gated.
func (s *MembershipService) RemoveMember(companyID, memberUserID uint64, actor *models.User) error {
	company, err := s.findCompany(companyID)
	if err != nil {
		return err
	}
	if company.OwnerID != actor.ID {
		return ErrNotOwner
	}

	member, err := s.membershipRepo.FindMember(companyID, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.membershipRepo.RemoveMember(member); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// LeaveCompany removes the actor's own member row.
func (s *MembershipService) LeaveCompany(companyID uint64, actor *models.User) error {
	member, err := s.membershipRepo.FindMember(companyID, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.membershipRepo.RemoveMember(member); err != nil {
		return fmt.Errorf("failed to leave company: %w", err)
	}

	return nil
}

// ListInvitationsForUser lists invitations addressed to the actor.
func (s *MembershipService) ListInvitationsForUser(actor *models.User) ([]models.CompanyInvitation, error) {
	invitations, err := s.membershipRepo.ListInvitationsForUser(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// ListRequestsForUser lists membership requests authored by the actor.
func (s *MembershipService) ListRequestsForUser(actor *models.User) ([]models.CompanyMembershipRequest, error) {
	requests, err := s.membershipRepo.ListRequestsForUser(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership requests: %w", err)
	}
	return requests, nil
}

// ListInvitationsForCompany lists a company's invitations. Owner-gated.
func (s *MembershipService) ListInvitationsForCompany(companyID uint64, actor *models.User) ([]models.CompanyInvitation, error) {
	company, err := s.findCompany(companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}

	invitations, err := s.membershipRepo.ListInvitationsForCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company invitations: %w", err)
	}
	return invitations, nil
}

// ListRequestsForCompany lists a company's membership requests. Owner-gated.
func (s *MembershipService) ListRequestsForCompany(companyID uint64, actor *models.User) ([]models.CompanyMembershipRequest, error) {
	company, err := s.findCompany(companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}

	requests, err := s.membershipRepo.ListRequestsForCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company membership requests: %w", err)
	}
	return requests, nil
}

// ListMembers lists a company's confirmed members with pagination.
func (s *MembershipService) ListMembers(companyID uint64, params utils.PaginationParams) ([]models.CompanyMember, int64, error) {
	if _, err := s.findCompany(companyID); err != nil {
		return nil, 0, err
	}

	members, total, err := s.membershipRepo.ListMembers(companyID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

// ListJoinedCompanies lists companies where the actor holds a member row,
// i.e. companies joined without owning them.
func (s *MembershipService) ListJoinedCompanies(actor *models.User) ([]models.Company, error) {
	companies, err := s.membershipRepo.ListMemberCompanies(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list joined companies: %w", err)
	}
	return companies, nil
}
