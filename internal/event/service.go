package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"clubhouse/internal/apperr"
	"clubhouse/internal/email"
	"clubhouse/internal/logger"
	"clubhouse/internal/member"
	"clubhouse/internal/metrics"
)

const maxGuests = 10

type Service interface {
	ListUpcoming(ctx context.Context, mc *member.MemberWithTier) ([]EventWithRsvp, error)
	SearchUpcoming(ctx context.Context, mc *member.MemberWithTier, query string) ([]Event, error)
	Create(ctx context.Context, mc *member.MemberWithTier, req CreateEventRequest) (*Event, error)
	UpsertRsvp(ctx context.Context, mc *member.MemberWithTier, req UpsertRsvpRequest) (*Rsvp, error)
	MyRsvps(ctx context.Context, mc *member.MemberWithTier) ([]RsvpWithEvent, error)
	CancelRsvp(ctx context.Context, mc *member.MemberWithTier, eventID uuid.UUID) (*Rsvp, error)
}

type service struct {
	repo         Repository
	emailService *email.Service
}

func NewService(repo Repository, emailService *email.Service) Service {
	return &service{repo: repo, emailService: emailService}
}

func (s *service) ListUpcoming(ctx context.Context, mc *member.MemberWithTier) ([]EventWithRsvp, error) {
	return s.repo.ListUpcoming(ctx, mc.ClubID, mc.ID)
}

func (s *service) SearchUpcoming(ctx context.Context, mc *member.MemberWithTier, query string) ([]Event, error) {
	if query == "" {
		return nil, apperr.InvalidInput("Search query is required")
	}
	return s.repo.SearchUpcomingByTitle(ctx, mc.ClubID, query)
}

func (s *service) Create(ctx context.Context, mc *member.MemberWithTier, req CreateEventRequest) (*Event, error) {
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperr.InvalidInput("Capacity must be at least 1")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperr.InvalidInput("End date must not precede start date")
	}

	status := StatusDraft
	if req.Publish {
		status = StatusPublished
	}
	e := &Event{
		ClubID:      mc.ClubID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		PriceCents:  req.PriceCents,
		Status:      status,
		CreatedBy:   mc.ID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) UpsertRsvp(ctx context.Context, mc *member.MemberWithTier, req UpsertRsvpRequest) (*Rsvp, error) {
	if mc.Status != member.StatusActive {
		return nil, apperr.Forbidden("Membership is not active")
	}

	switch req.Status {
	case RsvpAttending, RsvpDeclined, RsvpMaybe:
	default:
		return nil, apperr.InvalidInput("Status must be attending, declined or maybe")
	}
	if req.GuestCount < 0 || req.GuestCount > maxGuests {
		return nil, apperr.InvalidInput("Guest count must be between 0 and 10")
	}

	e, err := s.repo.GetByID(ctx, mc.ClubID, req.EventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, apperr.NotFound("Event not found")
		}
		return nil, err
	}

	if e.Status != StatusPublished {
		return nil, apperr.InvalidState("This event is not accepting RSVPs")
	}
	if !e.StartDate.After(time.Now()) {
		return nil, apperr.InvalidState("This event has already started")
	}

	// Advisory pre-check; the unique (event_id, member_id) constraint and
	// the upsert keep concurrent writers consistent.
	if req.Status == RsvpAttending && e.Capacity != nil {
		others, err := s.repo.CountOtherAttending(ctx, e.ID, mc.ID)
		if err != nil {
			return nil, err
		}
		if others+1+req.GuestCount > *e.Capacity {
			return nil, apperr.Conflict("This event is at capacity")
		}
	}

	rsvp := &Rsvp{
		EventID:    e.ID,
		MemberID:   mc.ID,
		Status:     req.Status,
		GuestCount: req.GuestCount,
	}
	if err := s.repo.UpsertRsvp(ctx, rsvp); err != nil {
		return nil, err
	}

	metrics.RecordRsvp(string(rsvp.Status))

	if rsvp.Status == RsvpAttending {
		startDate := e.StartDate.Format("Jan 2, 2006 at 3:04 PM")
		if err := s.emailService.SendRsvpConfirmation(ctx, mc.Email, mc.FirstName, e.Title, startDate, rsvp.GuestCount); err != nil {
			logger.WithError(err).Error("Failed to queue RSVP confirmation email")
		}
	}

	return rsvp, nil
}

func (s *service) MyRsvps(ctx context.Context, mc *member.MemberWithTier) ([]RsvpWithEvent, error) {
	return s.repo.ListRsvpsForMember(ctx, mc.ID)
}

// CancelRsvp flips the member's RSVP to declined. Rows are never deleted,
// so a change of heart later is just another upsert.
func (s *service) CancelRsvp(ctx context.Context, mc *member.MemberWithTier, eventID uuid.UUID) (*Rsvp, error) {
	if _, err := s.repo.GetByID(ctx, mc.ClubID, eventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, apperr.NotFound("Event not found")
		}
		return nil, err
	}

	rsvp, err := s.repo.GetRsvp(ctx, eventID, mc.ID)
	if err != nil {
		if errors.Is(err, ErrRsvpNotFound) {
			return nil, apperr.NotFound("You have no RSVP for this event")
		}
		return nil, err
	}
	if rsvp.Status == RsvpDeclined {
		return rsvp, nil
	}

	updated, err := s.repo.UpdateRsvpStatus(ctx, rsvp.ID, RsvpDeclined)
	if err != nil {
		return nil, err
	}

	metrics.RecordRsvp(string(RsvpDeclined))
	return updated, nil
}
