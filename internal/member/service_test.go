package member

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/apperr"
)

type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) GetWithTierByUserID(ctx context.Context, userID uuid.UUID) (*MemberWithTier, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MemberWithTier), args.Error(1)
}

func (m *MockMemberRepo) CreateClubWithAdmin(ctx context.Context, req CreateClubRequest, userID uuid.UUID, email string) (*Club, *Member, error) {
	args := m.Called(ctx, req, userID, email)
	var club *Club
	var mem *Member
	if args.Get(0) != nil {
		club = args.Get(0).(*Club)
	}
	if args.Get(1) != nil {
		mem = args.Get(1).(*Member)
	}
	return club, mem, args.Error(2)
}

func (m *MockMemberRepo) CreateMember(ctx context.Context, clubID uuid.UUID, req InviteMemberRequest) (*Member, error) {
	args := m.Called(ctx, clubID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockMemberRepo) FindUserIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockMemberRepo) ListTiers(ctx context.Context, clubID uuid.UUID) ([]MembershipTier, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MembershipTier), args.Error(1)
}

func adminContext(clubID uuid.UUID) *MemberWithTier {
	mc := &MemberWithTier{}
	mc.ID = uuid.New()
	mc.ClubID = clubID
	mc.Role = RoleAdmin
	mc.Status = StatusActive
	return mc
}

func TestService_ResolveByUser(t *testing.T) {
	t.Run("returns the member with tier", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		userID := uuid.New()
		level := TierPremium
		mc := &MemberWithTier{TierLevel: &level}
		mc.UserID = userID
		repo.On("GetWithTierByUserID", mock.Anything, userID).Return(mc, nil)

		got, err := svc.ResolveByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, TierPremium, *got.TierLevel)
	})

	t.Run("user without a member row gets not found", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		userID := uuid.New()
		repo.On("GetWithTierByUserID", mock.Anything, userID).Return(nil, sql.ErrNoRows)

		_, err := svc.ResolveByUser(context.Background(), userID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestService_CreateClub(t *testing.T) {
	userID := uuid.New()
	req := CreateClubRequest{Name: "Pine Valley", Slug: "pine-valley", FirstName: "Pat", LastName: "Lee"}

	t.Run("provisions club and admin", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		repo.On("GetWithTierByUserID", mock.Anything, userID).Return(nil, sql.ErrNoRows)
		repo.On("CreateClubWithAdmin", mock.Anything, mock.MatchedBy(func(r CreateClubRequest) bool {
			// Часовой пояс по умолчанию подставляется до записи
			return r.Timezone == "America/New_York"
		}), userID, "pat@example.com").Return(&Club{Name: "Pine Valley"}, &Member{Role: RoleAdmin}, nil)

		club, m, err := svc.CreateClub(context.Background(), userID, "pat@example.com", req)
		require.NoError(t, err)
		assert.Equal(t, "Pine Valley", club.Name)
		assert.Equal(t, RoleAdmin, m.Role)
	})

	t.Run("caller already in a club", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		repo.On("GetWithTierByUserID", mock.Anything, userID).Return(adminContext(uuid.New()), nil)

		_, _, err := svc.CreateClub(context.Background(), userID, "pat@example.com", req)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		repo.AssertNotCalled(t, "CreateClubWithAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		repo.On("GetWithTierByUserID", mock.Anything, userID).Return(nil, sql.ErrNoRows)
		repo.On("CreateClubWithAdmin", mock.Anything, mock.Anything, userID, "pat@example.com").
			Return(nil, nil, &pq.Error{Code: "23505"})

		_, _, err := svc.CreateClub(context.Background(), userID, "pat@example.com", req)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
		assert.Equal(t, "A club with this slug already exists", apperr.MessageOf(err))
	})
}

func TestService_InviteMember(t *testing.T) {
	clubID := uuid.New()
	mc := adminContext(clubID)

	t.Run("defaults the role to member", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		req := InviteMemberRequest{Email: "new@example.com", FirstName: "Sam", LastName: "Green"}
		repo.On("CreateMember", mock.Anything, clubID, mock.MatchedBy(func(r InviteMemberRequest) bool {
			return r.Role == RoleMember
		})).Return(&Member{Email: "new@example.com", Role: RoleMember}, nil)

		m, err := svc.InviteMember(context.Background(), mc, req)
		require.NoError(t, err)
		assert.Equal(t, RoleMember, m.Role)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		req := InviteMemberRequest{Email: "new@example.com", FirstName: "Sam", LastName: "Green", Role: "owner"}
		_, err := svc.InviteMember(context.Background(), mc, req)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	})

	t.Run("email without a registered user", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		req := InviteMemberRequest{Email: "ghost@example.com", FirstName: "Sam", LastName: "Green"}
		repo.On("CreateMember", mock.Anything, clubID, mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.InviteMember(context.Background(), mc, req)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("user already a member somewhere", func(t *testing.T) {
		repo := new(MockMemberRepo)
		svc := NewService(repo)

		req := InviteMemberRequest{Email: "taken@example.com", FirstName: "Sam", LastName: "Green"}
		repo.On("CreateMember", mock.Anything, clubID, mock.Anything).Return(nil, &pq.Error{Code: "23505"})

		_, err := svc.InviteMember(context.Background(), mc, req)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})
}

func TestService_ListTiers(t *testing.T) {
	repo := new(MockMemberRepo)
	svc := NewService(repo)

	clubID := uuid.New()
	mc := adminContext(clubID)
	repo.On("ListTiers", mock.Anything, clubID).Return([]MembershipTier{
		{Name: "Social", Level: TierStandard},
		{Name: "Golf", Level: TierPremium},
	}, nil)

	tiers, err := svc.ListTiers(context.Background(), mc)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, TierPremium, tiers[1].Level)
}
