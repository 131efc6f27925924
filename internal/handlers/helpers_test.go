package handlers

import (
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meduzzen/company-directory-api/internal/database"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/repository"
	"github.com/meduzzen/company-directory-api/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	db                *gorm.DB
	userRepo          repository.UserRepository
	companyRepo       repository.CompanyRepository
	membershipRepo    repository.MembershipRepository
	tokenService      *services.TokenService
	authService       *services.AuthService
	userService       *services.UserService
	companyService    *services.CompanyService
	membershipService *services.MembershipService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Auth0Identity{},
		&models.Company{},
		&models.CompanyMember{},
		&models.CompanyInvitation{},
		&models.CompanyMembershipRequest{},
	)
	require.NoError(t, err)
	require.NoError(t, database.AddPendingUniqueIndexes(db))

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	tokenService := services.NewTokenService("test-secret", 30)

	return testEnv{
		db:                db,
		userRepo:          userRepo,
		companyRepo:       companyRepo,
		membershipRepo:    membershipRepo,
		tokenService:      tokenService,
		authService:       services.NewAuthService(userRepo, tokenService),
		userService:       services.NewUserService(userRepo),
		companyService:    services.NewCompanyService(companyRepo),
		membershipService: services.NewMembershipService(companyRepo, membershipRepo),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	hash := "hashed"
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCompany(t *testing.T, db *gorm.DB, name string, ownerID uint64) *models.Company {
	t.Helper()

	company := &models.Company{
		Name:       name,
		Visibility: models.VisibilityVisible,
		OwnerID:    ownerID,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

func addTestMember(t *testing.T, db *gorm.DB, companyID, userID uint64) *models.CompanyMember {
	t.Helper()

	member := &models.CompanyMember{
		CompanyID: companyID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}
	require.NoError(t, db.Create(member).Error)
	return member
}
