package booking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, clubID, bookingID uuid.UUID) (*Booking, error)
	ListActiveForDate(ctx context.Context, facilityID uuid.UUID, date string) ([]Booking, error)
	ListUpcomingForMember(ctx context.Context, memberID uuid.UUID) ([]BookingWithFacility, error)
	ListForFacility(ctx context.Context, clubID, facilityID uuid.UUID, date string) ([]BookingWithFacility, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status Status) (*Booking, error)
}
