package booking

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"clubhouse/internal/apperr"
	"clubhouse/internal/email"
	"clubhouse/internal/facility"
	"clubhouse/internal/logger"
	"clubhouse/internal/member"
	"clubhouse/internal/metrics"
)

const pqUniqueViolation = "23505"

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Service interface {
	ListAvailableSlots(ctx context.Context, mc *member.MemberWithTier, facilityID uuid.UUID, date string) ([]AvailableSlot, error)
	Create(ctx context.Context, mc *member.MemberWithTier, req CreateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, mc *member.MemberWithTier, bookingID uuid.UUID) (*Booking, error)
	ListMine(ctx context.Context, mc *member.MemberWithTier) ([]BookingWithFacility, error)
	ListForFacility(ctx context.Context, mc *member.MemberWithTier, facilityID uuid.UUID, date string) ([]BookingWithFacility, error)
}

type service struct {
	repo         Repository
	facilityRepo facility.Repository
	emailService *email.Service
}

func NewService(repo Repository, facilityRepo facility.Repository, emailService *email.Service) Service {
	return &service{
		repo:         repo,
		facilityRepo: facilityRepo,
		emailService: emailService,
	}
}

// normalizeTime truncates a time-of-day string to HH:MM. Stored precision
// may exceed display precision, and the availability lookup is keyed on the
// minute.
func normalizeTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func parseDate(date string) (time.Time, error) {
	if !dateRe.MatchString(date) {
		return time.Time{}, apperr.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, apperr.InvalidInput("Invalid date")
	}
	return d, nil
}

func (s *service) ListAvailableSlots(ctx context.Context, mc *member.MemberWithTier, facilityID uuid.UUID, date string) ([]AvailableSlot, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	f, err := s.facilityRepo.GetByID(ctx, mc.ClubID, facilityID)
	if err != nil {
		if errors.Is(err, facility.ErrFacilityNotFound) {
			return nil, apperr.NotFound("Facility not found")
		}
		return nil, err
	}

	if f.Type == facility.TypeGolf && !mc.GolfEligible() {
		return nil, apperr.Forbidden("Golf booking requires an upgraded membership tier")
	}

	// time.Weekday counts 0=Sunday, same convention as the stored templates.
	templates, err := s.facilityRepo.ListSlots(ctx, facilityID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ListActiveForDate(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]uuid.UUID, len(active))
	for _, b := range active {
		taken[normalizeTime(b.StartTime)] = b.ID
	}

	slots := make([]AvailableSlot, 0, len(templates))
	for _, tmpl := range templates {
		slot := AvailableSlot{
			StartTime:   tmpl.StartTime,
			EndTime:     tmpl.EndTime,
			IsAvailable: true,
		}
		if id, ok := taken[normalizeTime(tmpl.StartTime)]; ok {
			bookingID := id
			slot.IsAvailable = false
			slot.BookingID = &bookingID
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *service) Create(ctx context.Context, mc *member.MemberWithTier, req CreateBookingRequest) (*Booking, error) {
	if mc.Status != member.StatusActive {
		return nil, apperr.Forbidden("Membership is not active")
	}

	if _, err := parseDate(req.Date); err != nil {
		return nil, err
	}
	if !facility.ValidTimeOfDay(req.StartTime) || !facility.ValidTimeOfDay(req.EndTime) {
		return nil, apperr.InvalidInput("Times must be in HH:MM format")
	}
	if req.PartySize == 0 {
		req.PartySize = 1
	}
	if req.PartySize < 1 || req.PartySize > 20 {
		return nil, apperr.InvalidInput("Party size must be between 1 and 20")
	}

	f, err := s.facilityRepo.GetByID(ctx, mc.ClubID, req.FacilityID)
	if err != nil {
		if errors.Is(err, facility.ErrFacilityNotFound) {
			return nil, apperr.NotFound("Facility not found")
		}
		return nil, err
	}

	if f.Type == facility.TypeGolf {
		if !mc.GolfEligible() {
			return nil, apperr.Forbidden("Golf booking requires an upgraded membership tier")
		}
		if req.PartySize > 4 {
			return nil, apperr.InvalidInput("Party size is limited to 4 for golf")
		}
	}

	// Advisory pre-check for a friendly error. The partial unique index on
	// active bookings is the actual enforcement.
	active, err := s.repo.ListActiveForDate(ctx, req.FacilityID, req.Date)
	if err != nil {
		return nil, err
	}
	start := normalizeTime(req.StartTime)
	for _, b := range active {
		if normalizeTime(b.StartTime) == start {
			metrics.RecordBookingConflict()
			return nil, apperr.Conflict("This slot is already booked")
		}
	}

	b := &Booking{
		ClubID:     mc.ClubID,
		FacilityID: req.FacilityID,
		MemberID:   mc.ID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		PartySize:  req.PartySize,
		Status:     StatusConfirmed,
		Notes:      req.Notes,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			metrics.RecordBookingConflict()
			return nil, apperr.Conflict("This slot is already booked")
		}
		return nil, err
	}

	metrics.RecordBooking(string(f.Type))

	if err := s.emailService.SendBookingConfirmation(ctx, mc.Email, mc.FirstName, f.Name, b.Date, b.StartTime, b.PartySize); err != nil {
		logger.WithError(err).Error("Failed to queue booking confirmation email")
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, mc *member.MemberWithTier, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, mc.ClubID, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, err
	}

	if b.MemberID != mc.ID && mc.Role != member.RoleAdmin {
		return nil, apperr.Forbidden("You can only cancel your own bookings")
	}
	if !b.Status.Active() {
		return nil, apperr.InvalidState("This booking cannot be cancelled")
	}
	// ISO dates compare correctly as strings.
	if b.Date < time.Now().Format("2006-01-02") {
		return nil, apperr.InvalidState("Past bookings cannot be cancelled")
	}

	cancelled, err := s.repo.UpdateStatus(ctx, b.ID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCancellation()

	// Notification goes to the caller only; an admin cancelling on a
	// member's behalf is expected to reach out directly.
	if b.MemberID == mc.ID {
		if f, err := s.facilityRepo.GetByID(ctx, mc.ClubID, b.FacilityID); err == nil {
			if err := s.emailService.SendBookingCancellation(ctx, mc.Email, mc.FirstName, f.Name, b.Date, b.StartTime); err != nil {
				logger.WithError(err).Error("Failed to queue booking cancellation email")
			}
		}
	}

	return cancelled, nil
}

func (s *service) ListMine(ctx context.Context, mc *member.MemberWithTier) ([]BookingWithFacility, error) {
	return s.repo.ListUpcomingForMember(ctx, mc.ID)
}

func (s *service) ListForFacility(ctx context.Context, mc *member.MemberWithTier, facilityID uuid.UUID, date string) ([]BookingWithFacility, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	if _, err := s.facilityRepo.GetByID(ctx, mc.ClubID, facilityID); err != nil {
		if errors.Is(err, facility.ErrFacilityNotFound) {
			return nil, apperr.NotFound("Facility not found")
		}
		return nil, err
	}
	return s.repo.ListForFacility(ctx, mc.ClubID, facilityID, date)
}
