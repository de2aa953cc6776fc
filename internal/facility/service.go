package facility

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"clubhouse/internal/apperr"
)

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidTimeOfDay reports whether s is a 24-hour HH:MM string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

type Service interface {
	Get(ctx context.Context, clubID, facilityID uuid.UUID) (*Facility, error)
	List(ctx context.Context, clubID uuid.UUID, facilityType *Type) ([]Facility, error)
	Create(ctx context.Context, clubID uuid.UUID, req CreateFacilityRequest) (*Facility, error)
	AddSlot(ctx context.Context, clubID, facilityID uuid.UUID, req CreateSlotRequest) (*BookingSlot, error)
	ListSlots(ctx context.Context, clubID, facilityID uuid.UUID) ([]BookingSlot, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, clubID, facilityID uuid.UUID) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, clubID, facilityID)
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			return nil, apperr.NotFound("Facility not found")
		}
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context, clubID uuid.UUID, facilityType *Type) ([]Facility, error) {
	return s.repo.ListByClub(ctx, clubID, facilityType)
}

func (s *service) Create(ctx context.Context, clubID uuid.UUID, req CreateFacilityRequest) (*Facility, error) {
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperr.InvalidInput("Capacity must be at least 1")
	}
	f := &Facility{
		ClubID:      clubID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Capacity:    req.Capacity,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) AddSlot(ctx context.Context, clubID, facilityID uuid.UUID, req CreateSlotRequest) (*BookingSlot, error) {
	if !ValidTimeOfDay(req.StartTime) || !ValidTimeOfDay(req.EndTime) {
		return nil, apperr.InvalidInput("Times must be in HH:MM format")
	}
	if req.StartTime >= req.EndTime {
		return nil, apperr.InvalidInput("Start time must be before end time")
	}
	if _, err := s.Get(ctx, clubID, facilityID); err != nil {
		return nil, err
	}
	slot := &BookingSlot{
		FacilityID:  facilityID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxBookings: 1,
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) ListSlots(ctx context.Context, clubID, facilityID uuid.UUID) ([]BookingSlot, error) {
	if _, err := s.Get(ctx, clubID, facilityID); err != nil {
		return nil, err
	}
	return s.repo.ListAllSlots(ctx, facilityID)
}
