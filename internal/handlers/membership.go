package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meduzzen/company-directory-api/internal/apierrors"
	"github.com/meduzzen/company-directory-api/internal/dto"
	"github.com/meduzzen/company-directory-api/internal/middleware"
	"github.com/meduzzen/company-directory-api/internal/services"
	"github.com/meduzzen/company-directory-api/internal/utils"
)

// MembershipHandler serves the invitation, membership-request and member
// management endpoints.
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// SendInvitationRequest is the invitation creation payload.
type SendInvitationRequest struct {
	InvitedUserID uint64 `json:"invited_user_id" binding:"required"`
}

// SendInvitation creates a pending invitation. Owner-gated.
func (h *MembershipHandler) SendInvitation(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.membershipService.SendInvitation(companyID, req.InvitedUserID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation))
}

// CancelInvitation withdraws a pending invitation. Owner-gated.
func (h *MembershipHandler) CancelInvitation(c *gin.Context) {
	invitationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitation, err := h.membershipService.CancelInvitation(invitationID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}

// AcceptInvitation accepts an invitation addressed to the caller.
func (h *MembershipHandler) AcceptInvitation(c *gin.Context) {
	invitationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitation, err := h.membershipService.AcceptInvitation(invitationID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}

// DeclineInvitation declines an invitation addressed to the caller.
func (h *MembershipHandler) DeclineInvitation(c *gin.Context) {
	invitationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitation, err := h.membershipService.DeclineInvitation(invitationID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}

// RequestMembership creates a membership request from the caller.
func (h *MembershipHandler) RequestMembership(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	request, err := h.membershipService.RequestMembership(companyID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipRequestDTO(*request))
}

// CancelMembershipRequest withdraws the caller's own pending request.
func (h *MembershipHandler) CancelMembershipRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	request, err := h.membershipService.CancelMembershipRequest(requestID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipRequestDTO(*request))
}

// HandleMembershipRequest accepts or declines a pending request. Owner-gated.
// The action path segment must be "accept" or "decline".
func (h *MembershipHandler) HandleMembershipRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	action := services.RequestAction(c.Param("action"))
	if action != services.RequestActionAccept && action != services.RequestActionDecline {
		apierrors.BadRequest(c, "Invalid action")
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	request, err := h.membershipService.HandleMembershipRequest(requestID, action, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipRequestDTO(*request))
}

// LeaveCompany removes the caller's own membership.
func (h *MembershipHandler) LeaveCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.membershipService.LeaveCompany(companyID, actor); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "You have left the company"})
}

// RemoveMember removes another user's membership. Owner-gated.
func (h *MembershipHandler) RemoveMember(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.membershipService.RemoveMember(companyID, memberUserID, actor); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Member removed successfully"})
}

// ListMyInvitations lists invitations addressed to the caller.
func (h *MembershipHandler) ListMyInvitations(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitations, err := h.membershipService.ListInvitationsForUser(actor)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDTOs(invitations))
}

// ListMyMembershipRequests lists requests authored by the caller.
func (h *MembershipHandler) ListMyMembershipRequests(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.membershipService.ListRequestsForUser(actor)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipRequestDTOs(requests))
}

// ListCompanyInvitations lists a company's invitations. Owner-gated.
func (h *MembershipHandler) ListCompanyInvitations(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitations, err := h.membershipService.ListInvitationsForCompany(companyID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDTOs(invitations))
}

// ListCompanyMembershipRequests lists a company's requests. Owner-gated.
func (h *MembershipHandler) ListCompanyMembershipRequests(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.membershipService.ListRequestsForCompany(companyID, actor)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipRequestDTOs(requests))
}

// ListMembers lists a company's confirmed members with pagination.
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	members, total, err := h.membershipService.ListMembers(companyID, params)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembersListDTO(members, total))
}

// ListJoinedCompanies lists companies the caller joined as a member.
func (h *MembershipHandler) ListJoinedCompanies(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	companies, err := h.membershipService.ListJoinedCompanies(actor)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = dto.ToCompanyDTO(company)
	}
	c.JSON(http.StatusOK, gin.H{"companies": dtos})
}

func respondMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotInvitedUser),
		errors.Is(err, services.ErrNotRequestAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvitationExists),
		errors.Is(err, services.ErrInvitationNotPending),
		errors.Is(err, services.ErrRequestExists),
		errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrOwnerIsMember),
		errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidRequestAction):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
