package billing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindMemberByStripeCustomer(ctx context.Context, customerID string) (*billingMember, error) {
	var m billingMember
	query := `SELECT id, club_id, stripe_customer_id FROM members WHERE stripe_customer_id = $1`
	err := r.db.GetContext(ctx, &m, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) FindMemberByID(ctx context.Context, memberID uuid.UUID) (*billingMember, error) {
	var m billingMember
	query := `SELECT id, club_id, stripe_customer_id FROM members WHERE id = $1`
	err := r.db.GetContext(ctx, &m, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) SetMemberSubscription(ctx context.Context, memberID uuid.UUID, subscriptionID *string, status string) error {
	query := `UPDATE members
	          SET stripe_subscription_id = COALESCE($2, stripe_subscription_id),
	              subscription_status = $3,
	              updated_at = NOW()
	          WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, memberID, subscriptionID, status)
	return err
}

// UpsertInvoice is keyed on stripe_invoice_id. Stripe retries webhooks, so
// a second delivery must land on the same row.
func (r *PostgresRepository) UpsertInvoice(ctx context.Context, inv *Invoice) error {
	query := `INSERT INTO invoices (club_id, member_id, stripe_invoice_id, amount_cents, status, description, due_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (stripe_invoice_id)
	          DO UPDATE SET amount_cents = EXCLUDED.amount_cents,
	                        status = EXCLUDED.status,
	                        description = EXCLUDED.description,
	                        due_date = EXCLUDED.due_date
	          RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query,
		inv.ClubID, inv.MemberID, inv.StripeInvoiceID, inv.AmountCents, inv.Status, inv.Description, inv.DueDate).
		Scan(&inv.ID, &inv.CreatedAt)
}

func (r *PostgresRepository) SetInvoiceStatusByStripeID(ctx context.Context, stripeInvoiceID string, status InvoiceStatus, markPaid bool) error {
	query := `UPDATE invoices
	          SET status = $2,
	              paid_at = CASE WHEN $3 THEN NOW() ELSE paid_at END
	          WHERE stripe_invoice_id = $1`
	_, err := r.db.ExecContext(ctx, query, stripeInvoiceID, status, markPaid)
	return err
}

func (r *PostgresRepository) InsertPayment(ctx context.Context, p *Payment) error {
	query := `INSERT INTO payments (club_id, member_id, invoice_id, stripe_payment_id, amount_cents, method, description)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (stripe_payment_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		p.ClubID, p.MemberID, p.InvoiceID, p.StripePaymentID, p.AmountCents, p.Method, p.Description)
	return err
}

func (r *PostgresRepository) ListInvoicesForMember(ctx context.Context, memberID uuid.UUID) ([]Invoice, error) {
	invoices := []Invoice{}
	query := `SELECT id, club_id, member_id, stripe_invoice_id, amount_cents, status, description,
	                 to_char(due_date, 'YYYY-MM-DD') AS due_date, paid_at, created_at
	          FROM invoices
	          WHERE member_id = $1
	          ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &invoices, query, memberID); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *PostgresRepository) ListPaymentsForMember(ctx context.Context, memberID uuid.UUID) ([]Payment, error) {
	payments := []Payment{}
	query := `SELECT id, club_id, member_id, invoice_id, stripe_payment_id, amount_cents, method, description, created_at
	          FROM payments
	          WHERE member_id = $1
	          ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &payments, query, memberID); err != nil {
		return nil, err
	}
	return payments, nil
}
