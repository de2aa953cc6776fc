package event

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

// ListUpcoming godoc
// @Summary      List upcoming events
// @Description  Returns the club's published future events with headcounts and the caller's RSVP.
// @Tags         events
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /events [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	events, err := h.svc.ListUpcoming(c.Request.Context(), mc)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// UpsertRsvp godoc
// @Summary      RSVP to an event
// @Description  Creates or replaces the current member's RSVP for an event.
// @Tags         events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpsertRsvpRequest  true  "RSVP"
// @Success      200      {object}  Rsvp
// @Failure      409      {object}  api.ErrorResponse
// @Router       /events/rsvp [post]
func (h *Handler) UpsertRsvp(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	var req UpsertRsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.InvalidInput(err.Error()))
		return
	}

	rsvp, err := h.svc.UpsertRsvp(c.Request.Context(), mc, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

// MyRsvps godoc
// @Summary      List my RSVPs
// @Description  Returns the current member's active RSVPs for future events.
// @Tags         events
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /events/rsvp/my [get]
func (h *Handler) MyRsvps(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	rsvps, err := h.svc.MyRsvps(c.Request.Context(), mc)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps})
}

// CancelRsvp godoc
// @Summary      Cancel an RSVP
// @Description  Flips the member's RSVP for the event to declined.
// @Tags         events
// @Security     BearerAuth
// @Produce      json
// @Param        eventID  path      string  true  "Event ID"
// @Success      200      {object}  Rsvp
// @Failure      404      {object}  api.ErrorResponse
// @Router       /events/{eventID}/rsvp [delete]
func (h *Handler) CancelRsvp(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		api.Fail(c, apperr.InvalidInput("Invalid event ID"))
		return
	}

	rsvp, err := h.svc.CancelRsvp(c.Request.Context(), mc, eventID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

// Create godoc
// @Summary      Create an event
// @Description  Creates a club event as a draft or publishes it right away. Admin only.
// @Tags         events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateEventRequest  true  "Event details"
// @Success      201      {object}  Event
// @Router       /admin/events [post]
func (h *Handler) Create(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.InvalidInput(err.Error()))
		return
	}

	e, err := h.svc.Create(c.Request.Context(), mc, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
