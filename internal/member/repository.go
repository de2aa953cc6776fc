package member

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const memberWithTierColumns = `
	m.id, m.club_id, m.user_id, m.first_name, m.last_name, m.email, m.phone,
	m.role, m.status, m.membership_tier_id,
	m.stripe_customer_id, m.stripe_subscription_id, m.subscription_status,
	m.created_at, m.updated_at,
	t.level AS tier_level, t.name AS tier_name`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetWithTierByUserID(ctx context.Context, userID uuid.UUID) (*MemberWithTier, error) {
	query := `
		SELECT ` + memberWithTierColumns + `
		FROM members m
		LEFT JOIN membership_tiers t ON m.membership_tier_id = t.id
		WHERE m.user_id = $1
	`

	var m MemberWithTier
	err := r.db.GetContext(ctx, &m, query, userID)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Default tiers seeded for every new club. Level drives golf eligibility;
// dues are placeholders the admin edits later.
var defaultTiers = []struct {
	name      string
	level     TierLevel
	duesCents int64
}{
	{"Social", TierStandard, 15000},
	{"Golf", TierPremium, 45000},
	{"Platinum", TierVIP, 90000},
	{"Legacy", TierHonorary, 0},
}

func (r *repository) CreateClubWithAdmin(ctx context.Context, req CreateClubRequest, userID uuid.UUID, email string) (*Club, *Member, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var club Club
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO clubs (name, slug, timezone)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, timezone, created_at
	`, req.Name, req.Slug, req.Timezone).StructScan(&club)
	if err != nil {
		return nil, nil, err
	}

	for _, tier := range defaultTiers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO membership_tiers (club_id, name, level, monthly_dues_cents)
			VALUES ($1, $2, $3, $4)
		`, club.ID, tier.name, tier.level, tier.duesCents)
		if err != nil {
			return nil, nil, err
		}
	}

	var m Member
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO members (club_id, user_id, first_name, last_name, email, role, status)
		VALUES ($1, $2, $3, $4, $5, 'admin', 'active')
		RETURNING id, club_id, user_id, first_name, last_name, email, phone,
		          role, status, membership_tier_id,
		          stripe_customer_id, stripe_subscription_id, subscription_status,
		          created_at, updated_at
	`, club.ID, userID, req.FirstName, req.LastName, email).StructScan(&m)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &club, &m, nil
}

func (r *repository) CreateMember(ctx context.Context, clubID uuid.UUID, req InviteMemberRequest) (*Member, error) {
	userID, err := r.FindUserIDByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	var m Member
	err = r.db.QueryRowxContext(ctx, `
		INSERT INTO members (club_id, user_id, first_name, last_name, email, role, status, membership_tier_id)
		VALUES ($1, $2, $3, $4, $5, $6, 'active', $7)
		RETURNING id, club_id, user_id, first_name, last_name, email, phone,
		          role, status, membership_tier_id,
		          stripe_customer_id, stripe_subscription_id, subscription_status,
		          created_at, updated_at
	`, clubID, userID, req.FirstName, req.LastName, req.Email, req.Role, req.MembershipTierID).StructScan(&m)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindUserIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM users WHERE email = $1`, email)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) ListTiers(ctx context.Context, clubID uuid.UUID) ([]MembershipTier, error) {
	var tiers []MembershipTier
	err := r.db.SelectContext(ctx, &tiers, `
		SELECT id, club_id, name, level, monthly_dues_cents, is_active, created_at
		FROM membership_tiers
		WHERE club_id = $1 AND is_active
		ORDER BY monthly_dues_cents ASC
	`, clubID)
	if err != nil {
		return nil, err
	}
	return tiers, nil
}
