package facility

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clubhouse/internal/api"
	"clubhouse/internal/apperr"
	"clubhouse/internal/member"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// List godoc
// @Summary      List club facilities
// @Description  Returns the active facilities of the caller's club, optionally filtered by type.
// @Tags         facilities
// @Security     BearerAuth
// @Produce      json
// @Param        type  query     string  false  "Facility type"  Enums(golf, tennis, dining, pool, fitness, other)
// @Success      200   {object}  map[string]interface{}
// @Router       /facilities [get]
func (h *Handler) List(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	var facilityType *Type
	if raw := c.Query("type"); raw != "" {
		t := Type(raw)
		switch t {
		case TypeGolf, TypeTennis, TypeDining, TypePool, TypeFitness, TypeOther:
			facilityType = &t
		default:
			api.Fail(c, apperr.InvalidInput("Unknown facility type"))
			return
		}
	}

	facilities, err := h.svc.List(c.Request.Context(), mc.ClubID, facilityType)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// Create godoc
// @Summary      Create a facility
// @Description  Creates a new club facility. Admin only.
// @Tags         facilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateFacilityRequest  true  "Facility details"
// @Success      201      {object}  Facility
// @Router       /admin/facilities [post]
func (h *Handler) Create(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.InvalidInput(err.Error()))
		return
	}

	f, err := h.svc.Create(c.Request.Context(), mc.ClubID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// AddSlot godoc
// @Summary      Add a schedule slot
// @Description  Adds a recurring weekly slot to a club facility. Admin only.
// @Tags         facilities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        facilityID  path      string             true  "Facility ID"
// @Param        request     body      CreateSlotRequest  true  "Slot details"
// @Success      201         {object}  BookingSlot
// @Router       /admin/facilities/{facilityID}/slots [post]
func (h *Handler) AddSlot(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	facilityID, err := uuid.Parse(c.Param("facilityID"))
	if err != nil {
		api.Fail(c, apperr.InvalidInput("Invalid facility ID"))
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.InvalidInput(err.Error()))
		return
	}

	slot, err := h.svc.AddSlot(c.Request.Context(), mc.ClubID, facilityID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// ListSlots godoc
// @Summary      List facility schedule slots
// @Description  Returns the recurring weekly slots of a club facility. Admin only.
// @Tags         facilities
// @Security     BearerAuth
// @Produce      json
// @Param        facilityID  path      string  true  "Facility ID"
// @Success      200         {object}  map[string]interface{}
// @Router       /admin/facilities/{facilityID}/slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	facilityID, err := uuid.Parse(c.Param("facilityID"))
	if err != nil {
		api.Fail(c, apperr.InvalidInput("Invalid facility ID"))
		return
	}

	slots, err := h.svc.ListSlots(c.Request.Context(), mc.ClubID, facilityID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
