package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meduzzen/company-directory-api/internal/apierrors"
	"github.com/meduzzen/company-directory-api/internal/services"
)

// Auth0Handler serves the federated login endpoints.
type Auth0Handler struct {
	auth0Service *services.Auth0Service
}

// NewAuth0Handler creates a new Auth0Handler.
func NewAuth0Handler(auth0Service *services.Auth0Service) *Auth0Handler {
	return &Auth0Handler{
		auth0Service: auth0Service,
	}
}

// Login redirects the client to the provider's authorization endpoint.
func (h *Auth0Handler) Login(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.auth0Service.AuthorizeURL())
}

// Token exchanges the authorization code for provider tokens. The local user
// and identity linkage are upserted before the response is returned, so the
// record exists by the client's next request.
func (h *Auth0Handler) Token(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	tokens, err := h.auth0Service.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrAuth0Exchange) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if tokens.IDToken != "" {
		if _, err := h.auth0Service.SyncIdentity(tokens.IDToken); err != nil {
			log.Printf("federated identity sync failed: %v", err)
			apierrors.InternalError(c, "Failed to sync federated identity")
			return
		}
	}

	c.JSON(http.StatusOK, tokens)
}

// TokenClient obtains a machine-to-machine token via the client-credentials
// grant.
func (h *Auth0Handler) TokenClient(c *gin.Context) {
	token, err := h.auth0Service.ClientCredentialsToken(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Protected is a token-gated probe returning the validated provider claims.
func (h *Auth0Handler) Protected(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		apierrors.Unauthorized(c, "Missing bearer token")
		return
	}

	claims, err := h.auth0Service.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		apierrors.Unauthorized(c, "Could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sub":         claims.Subject,
		"email":       claims.Email,
		"name":        claims.Name,
		"given_name":  claims.GivenName,
		"family_name": claims.FamilyName,
		"picture":     claims.Picture,
	})
}
