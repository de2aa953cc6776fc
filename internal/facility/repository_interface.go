package facility

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, clubID, facilityID uuid.UUID) (*Facility, error)
	ListByClub(ctx context.Context, clubID uuid.UUID, facilityType *Type) ([]Facility, error)
	Create(ctx context.Context, f *Facility) error
	ListSlots(ctx context.Context, facilityID uuid.UUID, dayOfWeek int) ([]BookingSlot, error)
	ListAllSlots(ctx context.Context, facilityID uuid.UUID) ([]BookingSlot, error)
	CreateSlot(ctx context.Context, s *BookingSlot) error
}
