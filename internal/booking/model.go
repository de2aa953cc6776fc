package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// Active reports whether the booking still holds its slot.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusPending
}

type Booking struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ClubID     uuid.UUID `db:"club_id" json:"club_id"`
	FacilityID uuid.UUID `db:"facility_id" json:"facility_id"`
	MemberID   uuid.UUID `db:"member_id" json:"member_id"`
	Date       string    `db:"date" json:"date"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	PartySize  int       `db:"party_size" json:"party_size"`
	Status     Status    `db:"status" json:"status"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type BookingWithFacility struct {
	Booking
	FacilityName string `db:"facility_name" json:"facility_name"`
	FacilityType string `db:"facility_type" json:"facility_type"`
}

// AvailableSlot is one row of the availability response: a weekly template
// projected onto a concrete date, marked taken when an active booking holds
// its start time.
type AvailableSlot struct {
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	IsAvailable bool       `json:"is_available"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
}

type CreateBookingRequest struct {
	FacilityID uuid.UUID `json:"facility_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
	EndTime    string    `json:"end_time" binding:"required"`
	PartySize  int       `json:"party_size"`
	Notes      *string   `json:"notes,omitempty"`
}
