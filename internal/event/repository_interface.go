package event

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, clubID, eventID uuid.UUID) (*Event, error)
	ListUpcoming(ctx context.Context, clubID, memberID uuid.UUID) ([]EventWithRsvp, error)
	SearchUpcomingByTitle(ctx context.Context, clubID uuid.UUID, query string) ([]Event, error)
	Create(ctx context.Context, e *Event) error
	CountOtherAttending(ctx context.Context, eventID, excludeMemberID uuid.UUID) (int, error)
	UpsertRsvp(ctx context.Context, r *Rsvp) error
	ListRsvpsForMember(ctx context.Context, memberID uuid.UUID) ([]RsvpWithEvent, error)
	GetRsvp(ctx context.Context, eventID, memberID uuid.UUID) (*Rsvp, error)
	UpdateRsvpStatus(ctx context.Context, rsvpID uuid.UUID, status RsvpStatus) (*Rsvp, error)
}
