package member

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleMember Role = "member"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

type TierLevel string

const (
	TierStandard TierLevel = "standard"
	TierPremium  TierLevel = "premium"
	TierVIP      TierLevel = "vip"
	TierHonorary TierLevel = "honorary"
)

type Club struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type MembershipTier struct {
	ID               uuid.UUID `db:"id" json:"id"`
	ClubID           uuid.UUID `db:"club_id" json:"club_id"`
	Name             string    `db:"name" json:"name"`
	Level            TierLevel `db:"level" json:"level"`
	MonthlyDuesCents int64     `db:"monthly_dues_cents" json:"monthly_dues_cents"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type Member struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	ClubID               uuid.UUID  `db:"club_id" json:"club_id"`
	UserID               uuid.UUID  `db:"user_id" json:"user_id"`
	FirstName            string     `db:"first_name" json:"first_name"`
	LastName             string     `db:"last_name" json:"last_name"`
	Email                string     `db:"email" json:"email"`
	Phone                *string    `db:"phone" json:"phone,omitempty"`
	Role                 Role       `db:"role" json:"role"`
	Status               Status     `db:"status" json:"status"`
	MembershipTierID     *uuid.UUID `db:"membership_tier_id" json:"membership_tier_id,omitempty"`
	StripeCustomerID     *string    `db:"stripe_customer_id" json:"-"`
	StripeSubscriptionID *string    `db:"stripe_subscription_id" json:"-"`
	SubscriptionStatus   *string    `db:"subscription_status" json:"subscription_status,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// MemberWithTier is the per-request member context: the member row joined
// with its tier. Resolved once per request and passed explicitly to every
// service that needs tenant scoping.
type MemberWithTier struct {
	Member
	TierLevel *TierLevel `db:"tier_level" json:"tier_level,omitempty"`
	TierName  *string    `db:"tier_name" json:"tier_name,omitempty"`
}

type CreateClubRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Slug      string `json:"slug" binding:"required,max=100"`
	Timezone  string `json:"timezone"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

type InviteMemberRequest struct {
	Email            string     `json:"email" binding:"required,email"`
	FirstName        string     `json:"first_name" binding:"required,max=100"`
	LastName         string     `json:"last_name" binding:"required,max=100"`
	Role             Role       `json:"role"`
	MembershipTierID *uuid.UUID `json:"membership_tier_id,omitempty"`
}
