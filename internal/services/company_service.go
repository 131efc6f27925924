package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/repository"
	"github.com/meduzzen/company-directory-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanyNameTaken   = errors.New("company with this name already exists")
	ErrInvalidCompanyName = errors.New("company name cannot be empty")
	ErrNotCompanyOwner    = errors.New("not authorized to modify this company")
)

// CompanyService provides business logic for company CRUD.
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// CreateCompanyInput represents parameters to create a new company.
type CreateCompanyInput struct {
	Name        string
	Description string
	Location    string
	Employees   *int
	Established *int
	Services    []string
	Visibility  models.CompanyVisibility
	OwnerID     uint64
}

// CreateCompany creates a company owned by the acting user. Name uniqueness
// is pre-checked and additionally enforced by the unique index; either path
// reports ErrCompanyNameTaken.
func (s *CompanyService) CreateCompany(input CreateCompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidCompanyName
	}

	if _, err := s.companyRepo.FindByName(name); err == nil {
		return nil, ErrCompanyNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check company name: %w", err)
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityHidden
	}

	company := &models.Company{
		Name:        name,
		Description: input.Description,
		Location:    input.Location,
		Employees:   input.Employees,
		Established: input.Established,
		Services:    models.ServiceList(input.Services),
		Visibility:  visibility,
		OwnerID:     input.OwnerID,
	}

	if err := s.companyRepo.Create(company); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// ListCompanies returns companies with pagination and the total count.
func (s *CompanyService) ListCompanies(params utils.PaginationParams) ([]models.Company, int64, error) {
	companies, total, err := s.companyRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, total, nil
}

// ListOwnedCompanies returns companies owned by the user, paginated.
func (s *CompanyService) ListOwnedCompanies(ownerID uint64, params utils.PaginationParams) ([]models.Company, int64, error) {
	companies, total, err := s.companyRepo.ListOwnedBy(ownerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list owned companies: %w", err)
	}
	return companies, total, nil
}

// GetCompany retrieves a company by ID. Reads are public.
func (s *CompanyService) GetCompany(id uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// UpdateCompanyInput holds optional fields of a company update. Nil fields
// are left unchanged.
type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Location    *string
	Employees   *int
	Established *int
	Services    []string
	Visibility  *models.CompanyVisibility
}

// UpdateCompany applies a partial update. Only the owner may update.
func (s *CompanyService) UpdateCompany(id, actorID uint64, input UpdateCompanyInput) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if company.OwnerID != actorID {
		return nil, ErrNotCompanyOwner
	}

	if input.Name != nil && *input.Name != company.Name {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidCompanyName
		}
		if _, err := s.companyRepo.FindByName(name); err == nil {
			return nil, ErrCompanyNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check company name: %w", err)
		}
		company.Name = name
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.Location != nil {
		company.Location = *input.Location
	}
	if input.Employees != nil {
		company.Employees = input.Employees
	}
	if input.Established != nil {
		company.Established = input.Established
	}
	if input.Services != nil {
		company.Services = models.ServiceList(input.Services)
	}
	if input.Visibility != nil {
		company.Visibility = *input.Visibility
	}

	if err := s.companyRepo.Update(company); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return company, nil
}

// DeleteCompany removes a company and everything referencing it. Only the
// owner may delete.
func (s *CompanyService) DeleteCompany(id, actorID uint64) error {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to find company: %w", err)
	}
	if company.OwnerID != actorID {
		return ErrNotCompanyOwner
	}

	if err := s.companyRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	return nil
}
