package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/meduzzen/company-directory-api/internal/config"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/repository"
)

var (
	ErrAuth0Exchange   = errors.New("failed to exchange authorization code")
	ErrAuth0Incomplete = errors.New("identity token missing required claims")
)

// Auth0Claims are the identity claims extracted from a validated token.
type Auth0Claims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Auth0TokenResponse is the provider's token-endpoint payload, returned to
// the client as-is.
type Auth0TokenResponse struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Auth0Service integrates the external identity provider: the redirect URL,
// the authorization-code exchange, token validation against the provider's
// published signing keys, and mapping external identities onto local users.
type Auth0Service struct {
	cfg        *config.Config
	userRepo   repository.UserRepository
	httpClient *http.Client
	jwks       keyfunc.Keyfunc
}

// NewAuth0Service creates a new Auth0Service. Fetching the provider's JWKS
// fails fast at startup rather than on the first login.
func NewAuth0Service(cfg *config.Config, userRepo repository.UserRepository) (*Auth0Service, error) {
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Auth0Domain)
	jwks, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load identity provider JWKS: %w", err)
	}

	return &Auth0Service{
		cfg:        cfg,
		userRepo:   userRepo,
		httpClient: http.DefaultClient,
		jwks:       jwks,
	}, nil
}

// AuthorizeURL builds the provider's authorization-code redirect target.
func (s *Auth0Service) AuthorizeURL() string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", s.cfg.Auth0ClientID)
	query.Set("redirect_uri", s.cfg.Auth0RedirectURI)
	query.Set("scope", "offline_access openid profile email")
	query.Set("audience", s.cfg.Auth0Audience)

	return fmt.Sprintf("https://%s/authorize?%s", s.cfg.Auth0Domain, query.Encode())
}

// ExchangeCode trades an authorization code for provider tokens.
func (s *Auth0Service) ExchangeCode(ctx context.Context, code string) (*Auth0TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", s.cfg.Auth0ClientID)
	form.Set("client_secret", s.cfg.Auth0ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", s.cfg.Auth0RedirectURI)

	return s.postTokenForm(ctx, form)
}

// ClientCredentialsToken obtains a machine-to-machine access token for the
// API audience.
func (s *Auth0Service) ClientCredentialsToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.cfg.Auth0ClientID)
	form.Set("client_secret", s.cfg.Auth0ClientSecret)
	form.Set("audience", s.cfg.Auth0Audience)

	tokens, err := s.postTokenForm(ctx, form)
	if err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

func (s *Auth0Service) postTokenForm(ctx context.Context, form url.Values) (*Auth0TokenResponse, error) {
	endpoint := fmt.Sprintf("https://%s/oauth/token", s.cfg.Auth0Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth0Exchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("auth0 token exchange failed: status=%d body=%s", resp.StatusCode, body)
		return nil, ErrAuth0Exchange
	}

	var tokens Auth0TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth0Exchange, err)
	}

	return &tokens, nil
}

// ValidateToken verifies a provider-issued token against the published
// signing keys and the API audience.
func (s *Auth0Service) ValidateToken(tokenString string) (*Auth0Claims, error) {
	claims := &Auth0Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(s.cfg.Auth0Audience),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SyncIdentity validates the identity token from a code exchange and upserts
// the local user and identity linkage. It runs synchronously in the
// token-exchange path so the local record exists before the client's next
// request.
func (s *Auth0Service) SyncIdentity(idToken string) (*models.User, error) {
	claims := &Auth0Claims{}
	token, err := jwt.ParseWithClaims(idToken, claims, s.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(s.cfg.Auth0ClientID),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrAuth0Incomplete
	}

	user, err := s.userRepo.FindByEmail(claims.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		user = &models.User{
			Email:    claims.Email,
			IsActive: true,
		}
	}

	sub := claims.Subject
	user.Auth0Sub = &sub
	if claims.Name != "" {
		user.Name = claims.Name
	}
	if claims.Picture != "" {
		user.ProfilePicture = claims.Picture
	}

	identity := &models.Auth0Identity{
		Auth0Sub:      sub,
		EmailVerified: claims.EmailVerified,
	}

	if err := s.userRepo.UpsertAuth0Identity(user, identity); err != nil {
		return nil, fmt.Errorf("failed to sync federated identity: %w", err)
	}

	return user, nil
}
