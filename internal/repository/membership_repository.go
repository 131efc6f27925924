package repository

import (
	"errors"
	"time"

	"github.com/meduzzen/company-directory-api/internal/database"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/utils"
	"gorm.io/gorm"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// CreateInvitation creates a pending invitation
func (r *GormMembershipRepository) CreateInvitation(inv *models.CompanyInvitation) error {
	if err := r.db.Create(inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindInvitation finds an invitation by ID
func (r *GormMembershipRepository) FindInvitation(id uint64) (*models.CompanyInvitation, error) {
	var inv models.CompanyInvitation
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindPendingInvitation finds the pending invitation for a (company, user) pair
func (r *GormMembershipRepository) FindPendingInvitation(companyID, invitedUserID uint64) (*models.CompanyInvitation, error) {
	var inv models.CompanyInvitation
	if err := r.db.Where(
		"company_id = ? AND invited_user_id = ? AND status = ?",
		companyID, invitedUserID, models.InvitationPending,
	).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvitationStatus sets an invitation's status
func (r *GormMembershipRepository) UpdateInvitationStatus(inv *models.CompanyInvitation, status models.InvitationStatus) error {
	inv.Status = status
	return r.db.Save(inv).Error
}

// AcceptInvitation flips the invitation to accepted and creates the member
// row if absent. Both writes commit or neither does.
func (r *GormMembershipRepository) AcceptInvitation(inv *models.CompanyInvitation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureMember(tx, inv.CompanyID, inv.InvitedUserID); err != nil {
			return err
		}

		inv.Status = models.InvitationAccepted
		return tx.Save(inv).Error
	})
}

// ListInvitationsForUser lists invitations addressed to a user
func (r *GormMembershipRepository) ListInvitationsForUser(userID uint64) ([]models.CompanyInvitation, error) {
	var invitations []models.CompanyInvitation
	if err := r.db.Where("invited_user_id = ?", userID).Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// ListInvitationsForCompany lists a company's invitations
func (r *GormMembershipRepository) ListInvitationsForCompany(companyID uint64) ([]models.CompanyInvitation, error) {
	var invitations []models.CompanyInvitation
	if err := r.db.Where("company_id = ?", companyID).Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// CreateRequest creates a pending membership request
func (r *GormMembershipRepository) CreateRequest(req *models.CompanyMembershipRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindRequest finds a membership request by ID
func (r *GormMembershipRepository) FindRequest(id uint64) (*models.CompanyMembershipRequest, error) {
	var req models.CompanyMembershipRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// FindPendingRequest finds the pending request for a (company, user) pair
func (r *GormMembershipRepository) FindPendingRequest(companyID, userID uint64) (*models.CompanyMembershipRequest, error) {
	var req models.CompanyMembershipRequest
	if err := r.db.Where(
		"company_id = ? AND user_id = ? AND status = ?",
		companyID, userID, models.MembershipRequestPending,
	).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus sets a membership request's status
func (r *GormMembershipRepository) UpdateRequestStatus(req *models.CompanyMembershipRequest, status models.MembershipRequestStatus) error {
	req.Status = status
	return r.db.Save(req).Error
}

// AcceptRequest flips the request to accepted and creates the member row if
// absent. Both writes commit or neither does.
func (r *GormMembershipRepository) AcceptRequest(req *models.CompanyMembershipRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureMember(tx, req.CompanyID, req.UserID); err != nil {
			return err
		}

		req.Status = models.MembershipRequestAccepted
		return tx.Save(req).Error
	})
}

// ListRequestsForUser lists membership requests authored by a user
func (r *GormMembershipRepository) ListRequestsForUser(userID uint64) ([]models.CompanyMembershipRequest, error) {
	var requests []models.CompanyMembershipRequest
	if err := r.db.Where("user_id = ?", userID).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListRequestsForCompany lists a company's membership requests
func (r *GormMembershipRepository) ListRequestsForCompany(companyID uint64) ([]models.CompanyMembershipRequest, error) {
	var requests []models.CompanyMembershipRequest
	if err := r.db.Where("company_id = ?", companyID).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindMember finds a member row for a (company, user) pair
func (r *GormMembershipRepository) FindMember(companyID, userID uint64) (*models.CompanyMember, error) {
	var member models.CompanyMember
	if err := r.db.Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember deletes a member row
func (r *GormMembershipRepository) RemoveMember(member *models.CompanyMember) error {
	return r.db.Delete(member).Error
}

// ListMembers lists a company's members with pagination and a total count
func (r *GormMembershipRepository) ListMembers(companyID uint64, params utils.PaginationParams) ([]models.CompanyMember, int64, error) {
	var members []models.CompanyMember
	if err := r.db.Where("company_id = ?", companyID).
		Scopes(database.Paginate(params)).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&models.CompanyMember{}).
		Where("company_id = ?", companyID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// ListMemberCompanies lists companies where the user has a member row
func (r *GormMembershipRepository) ListMemberCompanies(userID uint64) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.
		Joins("JOIN company_members ON company_members.company_id = companies.id").
		Where("company_members.user_id = ?", userID).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// ensureMember inserts the member row for (companyID, userID) unless one
// already exists. Runs inside the caller's transaction.
func ensureMember(tx *gorm.DB, companyID, userID uint64) error {
	var member models.CompanyMember
	err := tx.Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(&models.CompanyMember{
		CompanyID: companyID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}).Error
}
