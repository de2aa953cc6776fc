package event

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type RsvpStatus string

const (
	RsvpAttending  RsvpStatus = "attending"
	RsvpDeclined   RsvpStatus = "declined"
	RsvpMaybe      RsvpStatus = "maybe"
	RsvpWaitlisted RsvpStatus = "waitlisted"
)

type Event struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ClubID      uuid.UUID  `db:"club_id" json:"club_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	Location    *string    `db:"location" json:"location,omitempty"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	Capacity    *int       `db:"capacity" json:"capacity,omitempty"`
	PriceCents  *int64     `db:"price_cents" json:"price_cents,omitempty"`
	Status      Status     `db:"status" json:"status"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// EventWithRsvp is the list view: the event plus the attending headcount
// and the caller's own RSVP, filled by a single aggregate query.
type EventWithRsvp struct {
	Event
	AttendingCount int         `db:"attending_count" json:"attending_count"`
	MyRsvpStatus   *RsvpStatus `db:"my_rsvp_status" json:"my_rsvp_status,omitempty"`
	MyGuestCount   *int        `db:"my_guest_count" json:"my_guest_count,omitempty"`
}

type Rsvp struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	EventID    uuid.UUID  `db:"event_id" json:"event_id"`
	MemberID   uuid.UUID  `db:"member_id" json:"member_id"`
	Status     RsvpStatus `db:"status" json:"status"`
	GuestCount int        `db:"guest_count" json:"guest_count"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// RsvpWithEvent joins the member's RSVP with its event for listings and
// fuzzy title matching.
type RsvpWithEvent struct {
	Rsvp
	EventTitle     string    `db:"event_title" json:"event_title"`
	EventStartDate time.Time `db:"event_start_date" json:"event_start_date"`
	EventStatus    Status    `db:"event_status" json:"event_status"`
}

type UpsertRsvpRequest struct {
	EventID    uuid.UUID  `json:"event_id" binding:"required"`
	Status     RsvpStatus `json:"status" binding:"required"`
	GuestCount int        `json:"guest_count"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	PriceCents  *int64     `json:"price_cents,omitempty"`
	Publish     bool       `json:"publish"`
}
