package repository

import (
	"errors"
	"fmt"

	"github.com/meduzzen/company-directory-api/internal/database"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindByID finds a user by ID with friends preloaded
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Friends").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with pagination and a total count
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var users []models.User
	if err := r.db.Preload("Friends").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user, their owned companies and identity linkage atomically
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var companies []models.Company
		if err := tx.Where("owner_id = ?", id).Find(&companies).Error; err != nil {
			return err
		}
		for _, company := range companies {
			if err := deleteCompany(tx, company.ID); err != nil {
				return fmt.Errorf("failed to delete owned company %d: %w", company.ID, err)
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Auth0Identity{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.CompanyMember{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM friends WHERE user_id = ? OR friend_id = ?", id, id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// UpsertAuth0Identity writes the federated user and its identity record atomically
func (r *GormUserRepository) UpsertAuth0Identity(user *models.User, identity *models.Auth0Identity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		var existing models.Auth0Identity
		err := tx.Where("auth0_sub = ?", identity.Auth0Sub).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		identity.UserID = user.ID
		return tx.Create(identity).Error
	})
}
