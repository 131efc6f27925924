package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims are embedded in every issued bearer token.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the HMAC-signed bearer tokens used for
// stateless authentication.
type TokenService struct {
	secretKey []byte
	expiry    time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secretKey string, expireMinutes int) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		expiry:    time.Duration(expireMinutes) * time.Minute,
	}
}

// GenerateAccessToken signs a short-lived token embedding the user id and email.
func (s *TokenService) GenerateAccessToken(userID uint64, email string) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken verifies signature and expiry and returns the embedded
// user id. Every failure collapses to ErrInvalidToken.
func (s *TokenService) ValidateAccessToken(tokenString string) (uint64, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
