package billing

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice and Payment rows mirror provider state. Webhook handlers are the
// only writers; the application reads them back for display.
type Invoice struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	ClubID          uuid.UUID     `db:"club_id" json:"club_id"`
	MemberID        uuid.UUID     `db:"member_id" json:"member_id"`
	StripeInvoiceID *string       `db:"stripe_invoice_id" json:"-"`
	AmountCents     int64         `db:"amount_cents" json:"amount_cents"`
	Status          InvoiceStatus `db:"status" json:"status"`
	Description     string        `db:"description" json:"description"`
	DueDate         *string       `db:"due_date" json:"due_date,omitempty"`
	PaidAt          *time.Time    `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

type Payment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ClubID          uuid.UUID  `db:"club_id" json:"club_id"`
	MemberID        uuid.UUID  `db:"member_id" json:"member_id"`
	InvoiceID       *uuid.UUID `db:"invoice_id" json:"invoice_id,omitempty"`
	StripePaymentID *string    `db:"stripe_payment_id" json:"-"`
	AmountCents     int64      `db:"amount_cents" json:"amount_cents"`
	Method          string     `db:"method" json:"method"`
	Description     *string    `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// billingMember is the slice of the member row the webhook handlers need.
type billingMember struct {
	ID               uuid.UUID `db:"id"`
	ClubID           uuid.UUID `db:"club_id"`
	StripeCustomerID *string   `db:"stripe_customer_id"`
}

type StatusResponse struct {
	SubscriptionStatus *string   `json:"subscription_status,omitempty"`
	Invoices           []Invoice `json:"invoices"`
	Payments           []Payment `json:"payments"`
}
