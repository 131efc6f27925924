package repository

import (
	"errors"

	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/utils"
)

// ErrDuplicateKey is returned when an insert violates a unique index, e.g.
// the company name index or a pending-pair partial index.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with friends preloaded
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination and a total count
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user, their owned companies and identity linkage atomically
	Delete(id uint64) error

	// UpsertAuth0Identity writes the federated user and its identity record atomically
	UpsertAuth0Identity(user *models.User, identity *models.Auth0Identity) error
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// FindByName finds a company by its unique name
	FindByName(name string) (*models.Company, error)

	// List retrieves companies with pagination and a total count
	List(params utils.PaginationParams) ([]models.Company, int64, error)

	// ListOwnedBy retrieves companies owned by a user with pagination
	ListOwnedBy(ownerID uint64, params utils.PaginationParams) ([]models.Company, int64, error)

	// Update updates a company
	Update(company *models.Company) error

	// Delete removes a company and its invitations/requests/members atomically
	Delete(id uint64) error
}

// MembershipRepository defines the interface for the invitation and
// membership-request state machines and the resulting member rows.
type MembershipRepository interface {
	// CreateInvitation creates a pending invitation
	CreateInvitation(inv *models.CompanyInvitation) error

	// FindInvitation finds an invitation by ID
	FindInvitation(id uint64) (*models.CompanyInvitation, error)

	// FindPendingInvitation finds the pending invitation for a (company, user) pair
	FindPendingInvitation(companyID, invitedUserID uint64) (*models.CompanyInvitation, error)

	// UpdateInvitationStatus sets an invitation's status
	UpdateInvitationStatus(inv *models.CompanyInvitation, status models.InvitationStatus) error

	// AcceptInvitation flips the invitation to accepted and creates the member
	// row if absent, in one transaction.
	AcceptInvitation(inv *models.CompanyInvitation) error

	// ListInvitationsForUser lists invitations addressed to a user
	ListInvitationsForUser(userID uint64) ([]models.CompanyInvitation, error)

	// ListInvitationsForCompany lists a company's invitations
	ListInvitationsForCompany(companyID uint64) ([]models.CompanyInvitation, error)

	// CreateRequest creates a pending membership request
	CreateRequest(req *models.CompanyMembershipRequest) error

	// FindRequest finds a membership request by ID
	FindRequest(id uint64) (*models.CompanyMembershipRequest, error)

	// FindPendingRequest finds the pending request for a (company, user) pair
	FindPendingRequest(companyID, userID uint64) (*models.CompanyMembershipRequest, error)

	// UpdateRequestStatus sets a membership request's status
	UpdateRequestStatus(req *models.CompanyMembershipRequest, status models.MembershipRequestStatus) error

	// AcceptRequest flips the request to accepted and creates the member row
	// if absent, in one transaction.
	AcceptRequest(req *models.CompanyMembershipRequest) error

	// ListRequestsForUser lists membership requests authored by a user
	ListRequestsForUser(userID uint64) ([]models.CompanyMembershipRequest, error)

	// ListRequestsForCompany lists a company's membership requests
	ListRequestsForCompany(companyID uint64) ([]models.CompanyMembershipRequest, error)

	// FindMember finds a member row for a (company, user) pair
	FindMember(companyID, userID uint64) (*models.CompanyMember, error)

	// RemoveMember deletes a member row
	RemoveMember(member *models.CompanyMember) error

	// ListMembers lists a company's members with pagination and a total count
	ListMembers(companyID uint64, params utils.PaginationParams) ([]models.CompanyMember, int64, error)

	// ListMemberCompanies lists companies where the user has a member row
	ListMemberCompanies(userID uint64) ([]models.Company, error)
}
