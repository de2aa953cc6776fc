package booking

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

// ListTeeTimes godoc
// @Summary      List slot availability for a date
// @Description  Returns the facility's slots for the given date with booked-out markers.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        facility_id  query     string  true  "Facility ID"
// @Param        date         query     string  true  "Date (YYYY-MM-DD)"
// @Success      200          {object}  map[string]interface{}
// @Failure      404          {object}  api.ErrorResponse
// @Router       /bookings/tee-times [get]
func (h *Handler) ListTeeTimes(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	facilityID, err := uuid.Parse(c.Query("facility_id"))
	if err != nil {
		api.Fail(c, apperr.InvalidInput("Invalid facility_id"))
		return
	}
	date := c.Query("date")
	if date == "" {
		api.Fail(c, apperr.InvalidInput("date is required"))
		return
	}

	slots, err := h.svc.ListAvailableSlots(c.Request.Context(), mc, facilityID, date)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// Create godoc
// @Summary      Create a booking
// @Description  Books a facility slot for the current member.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking details"
// @Success      201      {object}  Booking
// @Failure      409      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.InvalidInput(err.Error()))
		return
	}

	b, err := h.svc.Create(c.Request.Context(), mc, req)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Cancels the caller's own booking, or any booking for an admin.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      403        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [patch]
func (h *Handler) Cancel(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		api.Fail(c, apperr.InvalidInput("Invalid booking ID"))
		return
	}

	b, err := h.svc.Cancel(c.Request.Context(), mc, bookingID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMine godoc
// @Summary      List my bookings
// @Description  Returns the current member's upcoming active bookings.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /bookings/my [get]
func (h *Handler) ListMine(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	bookings, err := h.svc.ListMine(c.Request.Context(), mc)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListForFacility godoc
// @Summary      List facility bookings for a date
// @Description  Returns every booking of a facility for the given date. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        facility_id  query     string  true  "Facility ID"
// @Param        date         query     string  true  "Date (YYYY-MM-DD)"
// @Success      200          {object}  map[string]interface{}
// @Router       /admin/bookings [get]
func (h *Handler) ListForFacility(c *gin.Context) {
	mc, ok := member.FromContext(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Member context missing"))
		return
	}

	facilityID, err := uuid.Parse(c.Query("facility_id"))
	if err != nil {
		api.Fail(c, apperr.InvalidInput("Invalid facility_id"))
		return
	}
	date := c.Query("date")
	if date == "" {
		api.Fail(c, apperr.InvalidInput("date is required"))
		return
	}

	bookings, err := h.svc.ListForFacility(c.Request.Context(), mc, facilityID, date)
	if err != nil {
		api.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
