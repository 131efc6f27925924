package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/repository"
)

func TestAuthenticate(t *testing.T) {
	db, _ := setupServiceTest(t)
	userRepo := repository.NewUserRepository(db)
	userService := NewUserService(userRepo)
	authService := NewAuthService(userRepo, NewTokenService("test-secret", 30))

	user, err := userService.CreateUser(CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	// The stored hash is never the raw password
	require.NotEqual(t, "password123", *user.PasswordHash)

	token, err := authService.Authenticate("alice@example.com", "password123")
	require.NoError(t, err)

	resolved, err := authService.ResolveUser(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	_, err = authService.Authenticate("alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = authService.Authenticate("nobody@example.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_FederatedOnlyUser(t *testing.T) {
	db, _ := setupServiceTest(t)
	userRepo := repository.NewUserRepository(db)
	authService := NewAuthService(userRepo, NewTokenService("test-secret", 30))

	// Provisioned through the identity provider, so no local password
	sub := "auth0|abc123"
	user := &models.User{
		Name:     "Remote",
		Email:    "remote@example.com",
		Auth0Sub: &sub,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	_, err := authService.Authenticate("remote@example.com", "anything")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser_Validation(t *testing.T) {
	db, _ := setupServiceTest(t)
	userService := NewUserService(repository.NewUserRepository(db))

	_, err := userService.CreateUser(CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = userService.CreateUser(CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = userService.CreateUser(CreateUserInput{
		Name:     "Other",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}
