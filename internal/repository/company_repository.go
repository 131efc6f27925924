package repository

import (
	"errors"

	"github.com/meduzzen/company-directory-api/internal/database"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/utils"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	if err := r.db.Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByName finds a company by its unique name
func (r *GormCompanyRepository) FindByName(name string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves companies with pagination and a total count
func (r *GormCompanyRepository) List(params utils.PaginationParams) ([]models.Company, int64, error) {
	var companies []models.Company
	if err := r.db.Scopes(database.Paginate(params)).
		Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// ListOwnedBy retrieves companies owned by a user with pagination
func (r *GormCompanyRepository) ListOwnedBy(ownerID uint64, params utils.PaginationParams) ([]models.Company, int64, error) {
	var companies []models.Company
	if err := r.db.Where("owner_id = ?", ownerID).
		Scopes(database.Paginate(params)).
		Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&models.Company{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// Update updates a company
func (r *GormCompanyRepository) Update(company *models.Company) error {
	if err := r.db.Save(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Delete removes a company and its invitations/requests/members atomically
func (r *GormCompanyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteCompany(tx, id)
	})
}

// deleteCompany removes a company and its dependent rows inside the caller's
// transaction. Shared with the user-deletion cascade.
func deleteCompany(tx *gorm.DB, id uint64) error {
	if err := tx.Where("company_id = ?", id).Delete(&models.CompanyInvitation{}).Error; err != nil {
		return err
	}

	if err := tx.Where("company_id = ?", id).Delete(&models.CompanyMembershipRequest{}).Error; err != nil {
		return err
	}

	if err := tx.Where("company_id = ?", id).Delete(&models.CompanyMember{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Company{}, id).Error
}
