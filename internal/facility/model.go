package facility

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeGolf    Type = "golf"
	TypeTennis  Type = "tennis"
	TypeDining  Type = "dining"
	TypePool    Type = "pool"
	TypeFitness Type = "fitness"
	TypeOther   Type = "other"
)

type Facility struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClubID      uuid.UUID `db:"club_id" json:"club_id"`
	Name        string    `db:"name" json:"name"`
	Type        Type      `db:"type" json:"type"`
	Description *string   `db:"description" json:"description,omitempty"`
	Capacity    *int      `db:"capacity" json:"capacity,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// BookingSlot is a recurring weekly availability template, not a
// reservation. day_of_week uses 0=Sunday, matching time.Weekday and the
// Postgres EXTRACT(DOW ...) convention. Times are HH:MM at the boundary.
type BookingSlot struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FacilityID  uuid.UUID `db:"facility_id" json:"facility_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	MaxBookings int       `db:"max_bookings" json:"max_bookings"`
	IsActive    bool      `db:"is_active" json:"is_active"`
}

type CreateFacilityRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Type        Type    `json:"type" binding:"required,oneof=golf tennis dining pool fitness other"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
}

type CreateSlotRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,timeofday"`
	EndTime   string `json:"end_time" binding:"required,timeofday"`
}
