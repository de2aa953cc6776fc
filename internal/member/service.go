package member

import (
	"context"
	"database/sql"
	"errors"

	"clubhouse/internal/apperr"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type Service interface {
	ResolveByUser(ctx context.Context, userID uuid.UUID) (*MemberWithTier, error)
	CreateClub(ctx context.Context, userID uuid.UUID, email string, req CreateClubRequest) (*Club, *Member, error)
	InviteMember(ctx context.Context, mc *MemberWithTier, req InviteMemberRequest) (*Member, error)
	ListTiers(ctx context.Context, mc *MemberWithTier) ([]MembershipTier, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ResolveByUser maps an authenticated identity to its member row plus tier.
// A user who authenticated but has no member row yet gets NotFound; callers
// surface that as "not provisioned into any club".
func (s *service) ResolveByUser(ctx context.Context, userID uuid.UUID) (*MemberWithTier, error) {
	m, err := s.repo.GetWithTierByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Member not found")
		}
		return nil, err
	}
	return m, nil
}

func (s *service) CreateClub(ctx context.Context, userID uuid.UUID, email string, req CreateClubRequest) (*Club, *Member, error) {
	if req.Timezone == "" {
		req.Timezone = "America/New_York"
	}

	if _, err := s.repo.GetWithTierByUserID(ctx, userID); err == nil {
		return nil, nil, apperr.Conflict("You already belong to a club")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	club, m, err := s.repo.CreateClubWithAdmin(ctx, req, userID, email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, nil, apperr.Conflict("A club with this slug already exists")
		}
		return nil, nil, err
	}

	return club, m, nil
}

func (s *service) InviteMember(ctx context.Context, mc *MemberWithTier, req InviteMemberRequest) (*Member, error) {
	if req.Role == "" {
		req.Role = RoleMember
	}
	switch req.Role {
	case RoleAdmin, RoleStaff, RoleMember:
	default:
		return nil, apperr.InvalidInput("Invalid role")
	}

	m, err := s.repo.CreateMember(ctx, mc.ClubID, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No registered user with this email")
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, apperr.Conflict("This user is already a member of a club")
		}
		return nil, err
	}

	return m, nil
}

func (s *service) ListTiers(ctx context.Context, mc *MemberWithTier) ([]MembershipTier, error) {
	return s.repo.ListTiers(ctx, mc.ClubID)
}
