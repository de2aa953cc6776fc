package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FindMemberByStripeCustomer(ctx context.Context, customerID string) (*billingMember, error)
	FindMemberByID(ctx context.Context, memberID uuid.UUID) (*billingMember, error)
	SetMemberSubscription(ctx context.Context, memberID uuid.UUID, subscriptionID *string, status string) error
	UpsertInvoice(ctx context.Context, inv *Invoice) error
	SetInvoiceStatusByStripeID(ctx context.Context, stripeInvoiceID string, status InvoiceStatus, markPaid bool) error
	InsertPayment(ctx context.Context, p *Payment) error
	ListInvoicesForMember(ctx context.Context, memberID uuid.UUID) ([]Invoice, error)
	ListPaymentsForMember(ctx context.Context, memberID uuid.UUID) ([]Payment, error)
}
