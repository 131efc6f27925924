package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meduzzen/company-directory-api/internal/dto"
	"github.com/meduzzen/company-directory-api/internal/middleware"
	"github.com/meduzzen/company-directory-api/internal/models"
)

// membershipRouter builds a router whose acting user can be swapped between
// requests, mirroring what RequireAuth provides in production.
func membershipRouter(handler *MembershipHandler, actor **models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if *actor != nil {
			middleware.SetCurrentUser(c, *actor)
		}
		c.Next()
	})

	companies := r.Group("/companies")
	{
		companies.POST("/:id/invite", handler.SendInvitation)
		companies.GET("/:id/invitations", handler.ListCompanyInvitations)
		companies.POST("/:id/membership-requests", handler.RequestMembership)
		companies.GET("/:id/membership-requests", handler.ListCompanyMembershipRequests)
		companies.GET("/:id/members", handler.ListMembers)
		companies.DELETE("/:id/members/me", handler.LeaveCompany)
		companies.DELETE("/:id/members/:user_id", handler.RemoveMember)
		companies.GET("/joined", handler.ListJoinedCompanies)
	}
	invitations := r.Group("/invitations")
	{
		invitations.GET("/my", handler.ListMyInvitations)
		invitations.DELETE("/:id", handler.CancelInvitation)
		invitations.PUT("/:id/accept", handler.AcceptInvitation)
		invitations.PUT("/:id/decline", handler.DeclineInvitation)
	}
	requests := r.Group("/membership-requests")
	{
		requests.GET("/my", handler.ListMyMembershipRequests)
		requests.DELETE("/:id", handler.CancelMembershipRequest)
		requests.PUT("/:id/:action", handler.HandleMembershipRequest)
	}

	return r
}

func doJSON(r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInvitationFlow_AcceptCreatesMember(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	invited := createTestUser(t, env.db, "Invitee", "invitee@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	// Owner invites
	actor = owner
	w := doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/invite", company.ID),
		map[string]uint64{"invited_user_id": invited.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var invitation dto.InvitationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invitation))
	require.Equal(t, models.InvitationPending, invitation.Status)

	// Invited user accepts
	actor = invited
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/invitations/%d/accept", invitation.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var accepted dto.InvitationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.Equal(t, models.InvitationAccepted, accepted.Status)

	// Exactly one member row exists
	var count int64
	require.NoError(t, env.db.Model(&models.CompanyMember{}).
		Where("company_id = ? AND user_id = ?", company.ID, invited.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Member listing includes the invitee with total 1
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/companies/%d/members", company.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var members dto.MembersListDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.EqualValues(t, 1, members.Total)
	require.Len(t, members.Members, 1)
	require.Equal(t, invited.ID, members.Members[0].UserID)
}

func TestInvitation_DuplicatePendingConflict(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	invited := createTestUser(t, env.db, "Invitee", "invitee@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	var actor *models.User
	r := membershipRouter(handler, &actor)
	actor = owner

	payload := map[string]uint64{"invited_user_id": invited.ID}
	w := doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/invite", company.ID), payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Second invitation while one is pending
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/invite", company.ID), payload)
	require.Equal(t, http.StatusConflict, w.Code)

	// After cancelling, inviting again succeeds
	var invitation models.CompanyInvitation
	require.NoError(t, env.db.Where("company_id = ?", company.ID).First(&invitation).Error)
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/invitations/%d", invitation.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/invite", company.ID), payload)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestInvitation_OnlyInvitedUserMayAct(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	invited := createTestUser(t, env.db, "Invitee", "invitee@example.com")
	other := createTestUser(t, env.db, "Other", "other@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	invitation, err := env.membershipService.SendInvitation(company.ID, invited.ID, owner)
	require.NoError(t, err)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = other
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/invitations/%d/accept", invitation.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/invitations/%d/decline", invitation.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Non-owner may not cancel
	actor = invited
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/invitations/%d", invitation.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvitation_TerminalStateIsFinal(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	invited := createTestUser(t, env.db, "Invitee", "invitee@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	invitation, err := env.membershipService.SendInvitation(company.ID, invited.ID, owner)
	require.NoError(t, err)
	_, err = env.membershipService.DeclineInvitation(invitation.ID, invited)
	require.NoError(t, err)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = invited
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/invitations/%d/accept", invitation.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	actor = owner
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/invitations/%d", invitation.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// Stored status unchanged
	var stored models.CompanyInvitation
	require.NoError(t, env.db.First(&stored, invitation.ID).Error)
	require.Equal(t, models.InvitationDeclined, stored.Status)
}

func TestMembershipRequestFlow_OwnerAccepts(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	requester := createTestUser(t, env.db, "Requester", "requester@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = requester
	w := doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/membership-requests", company.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var request dto.MembershipRequestDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))
	require.Equal(t, models.MembershipRequestPending, request.Status)

	actor = owner
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/membership-requests/%d/accept", request.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var member models.CompanyMember
	require.NoError(t, env.db.
		Where("company_id = ? AND user_id = ?", company.ID, requester.ID).
		First(&member).Error)

	// Handling again is a conflict: the request is no longer pending
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/membership-requests/%d/accept", request.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestMembershipRequest_OwnerAndMemberCannotRequest(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	member := createTestUser(t, env.db, "Member", "member@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)
	addTestMember(t, env.db, company.ID, member.ID)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = owner
	w := doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/membership-requests", company.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)

	actor = member
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/companies/%d/membership-requests", company.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestMembershipRequest_InvalidAction(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	requester := createTestUser(t, env.db, "Requester", "requester@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	request, err := env.membershipService.RequestMembership(company.ID, requester)
	require.NoError(t, err)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = owner
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/membership-requests/%d/approve", request.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMembershipRequest_OnlyAuthorMayCancel(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	requester := createTestUser(t, env.db, "Requester", "requester@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	request, err := env.membershipService.RequestMembership(company.ID, requester)
	require.NoError(t, err)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = owner
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/membership-requests/%d", request.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	actor = requester
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/membership-requests/%d", request.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Cancelling a cancelled request is a conflict
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/membership-requests/%d", request.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLeaveAndRemoveMember(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	member := createTestUser(t, env.db, "Member", "member@example.com")
	outsider := createTestUser(t, env.db, "Outsider", "outsider@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)
	addTestMember(t, env.db, company.ID, member.ID)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	// Non-owner cannot remove members
	actor = outsider
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/companies/%d/members/%d", company.ID, member.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Leaving without a member row fails
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/companies/%d/members/me", company.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Member leaves
	actor = member
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/companies/%d/members/me", company.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Owner removing the departed member now fails
	actor = owner
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/companies/%d/members/%d", company.ID, member.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListings_OwnerGated(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	other := createTestUser(t, env.db, "Other", "other@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)

	_, err := env.membershipService.SendInvitation(company.ID, other.ID, owner)
	require.NoError(t, err)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = other
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/companies/%d/invitations", company.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/companies/%d/membership-requests", company.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	actor = owner
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/companies/%d/invitations", company.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var invitations []dto.InvitationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invitations))
	require.Len(t, invitations, 1)

	// The invited user sees it under their own listing
	actor = other
	w = doJSON(r, http.MethodGet, "/invitations/my", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invitations))
	require.Len(t, invitations, 1)
}

func TestListJoinedCompanies(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewMembershipHandler(env.membershipService)

	owner := createTestUser(t, env.db, "Owner", "owner@example.com")
	member := createTestUser(t, env.db, "Member", "member@example.com")
	company := createTestCompany(t, env.db, "Acme", owner.ID)
	createTestCompany(t, env.db, "Beta", owner.ID)
	addTestMember(t, env.db, company.ID, member.ID)

	var actor *models.User
	r := membershipRouter(handler, &actor)

	actor = member
	w := doJSON(r, http.MethodGet, "/companies/joined", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.CompanyDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response["companies"], 1)
	require.Equal(t, "Acme", response["companies"][0].Name)
}
