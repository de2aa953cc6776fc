package member

import (
	"net/http"

	"clubhouse/internal/api"
	"clubhouse/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GetMe godoc
// @Summary      Get current member
// @Description  Returns the caller's member profile with tier info.
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  MemberWithTier
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	mc, ok := FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member":        mc,
		"golf_eligible": mc.GolfEligible(),
	})
}

// CreateClub godoc
// @Summary      Create a club
// @Description  Provisions a new club with default tiers and makes the caller its admin.
// @Tags         clubs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClubRequest  true  "Club data"
// @Success      201      {object}  gin.H
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /clubs [post]
func (h *Handler) CreateClub(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := c.GetString("user_email")

	club, m, err := h.svc.CreateClub(c.Request.Context(), userID, email, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"club": club, "member": m})
}

// InviteMember godoc
// @Summary      Invite a member
// @Description  Creates a member row for a registered user. Admin only.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      InviteMemberRequest  true  "Member data"
// @Success      201      {object}  Member
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/members [post]
func (h *Handler) InviteMember(c *gin.Context) {
	mc, ok := FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.svc.InviteMember(c.Request.Context(), mc, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ListTiers godoc
// @Summary      List membership tiers
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   MembershipTier
// @Failure      401  {object}  api.ErrorResponse
// @Router       /tiers [get]
func (h *Handler) ListTiers(c *gin.Context) {
	mc, ok := FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tiers, err := h.svc.ListTiers(c.Request.Context(), mc)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}
