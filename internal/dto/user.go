package dto

import (
	"github.com/meduzzen/company-directory-api/internal/models"
)

// FriendDTO is the compact friend representation nested in user details.
type FriendDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Age            *int        `json:"age"`
	IsActive       bool        `json:"is_active"`
	Bio            string      `json:"bio"`
	ProfilePicture string      `json:"profile_picture"`
	Friends        []FriendDTO `json:"friends"`
}

// UsersListDTO pairs a user page with the total count
type UsersListDTO struct {
	Users []UserDTO `json:"users"`
	Total int64     `json:"total"`
}

// TokenDTO is the login response
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserDTO converts a user model to its response DTO
func ToUserDTO(user models.User) UserDTO {
	friends := make([]FriendDTO, len(user.Friends))
	for i, friend := range user.Friends {
		friends[i] = FriendDTO{
			ID:   friend.ID,
			Name: friend.Name,
		}
	}

	return UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Age:            user.Age,
		IsActive:       user.IsActive,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Friends:        friends,
	}
}

// ToUsersListDTO converts a user page to the list response
func ToUsersListDTO(users []models.User, total int64) UsersListDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return UsersListDTO{Users: dtos, Total: total}
}
