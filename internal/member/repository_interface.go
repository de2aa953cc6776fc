package member

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetWithTierByUserID(ctx context.Context, userID uuid.UUID) (*MemberWithTier, error)
	CreateClubWithAdmin(ctx context.Context, req CreateClubRequest, userID uuid.UUID, email string) (*Club, *Member, error)
	CreateMember(ctx context.Context, clubID uuid.UUID, req InviteMemberRequest) (*Member, error)
	FindUserIDByEmail(ctx context.Context, email string) (uuid.UUID, error)
	ListTiers(ctx context.Context, clubID uuid.UUID) ([]MembershipTier, error)
}
