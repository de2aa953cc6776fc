package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"

	"clubhouse/internal/logger"
	"clubhouse/internal/member"
	"clubhouse/internal/metrics"
)

type Service interface {
	HandleEvent(ctx context.Context, event stripe.Event) error
	Status(ctx context.Context, mc *member.MemberWithTier) (*StatusResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// HandleEvent routes a verified provider event. Unknown types are
// acknowledged without action; a missing member is logged and swallowed so
// the provider stops retrying a delivery we can never land.
func (s *service) HandleEvent(ctx context.Context, event stripe.Event) error {
	var err error
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err == nil {
			err = s.handleCheckoutCompleted(ctx, &session)
		}
	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err = json.Unmarshal(event.Data.Raw, &sub); err == nil {
			err = s.handleSubscriptionChange(ctx, &sub)
		}
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err = json.Unmarshal(event.Data.Raw, &sub); err == nil {
			err = s.handleSubscriptionDeleted(ctx, &sub)
		}
	case "invoice.created":
		var inv stripe.Invoice
		if err = json.Unmarshal(event.Data.Raw, &inv); err == nil {
			err = s.handleInvoiceCreated(ctx, &inv)
		}
	case "invoice.paid":
		var inv stripe.Invoice
		if err = json.Unmarshal(event.Data.Raw, &inv); err == nil {
			err = s.handleInvoicePaid(ctx, &inv)
		}
	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err = json.Unmarshal(event.Data.Raw, &inv); err == nil {
			err = s.handleInvoicePaymentFailed(ctx, &inv)
		}
	default:
		metrics.RecordStripeWebhookEvent(string(event.Type), "skipped")
		return nil
	}

	if err != nil {
		metrics.RecordStripeWebhookEvent(string(event.Type), "failed")
		return err
	}
	metrics.RecordStripeWebhookEvent(string(event.Type), "processed")
	return nil
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func (s *service) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	if session.Mode != stripe.CheckoutSessionModeSubscription {
		return nil
	}

	memberID, ok := session.Metadata["member_id"]
	if !ok {
		logger.Errorf("Checkout completed without member_id metadata: %s", session.ID)
		return nil
	}
	m, err := s.findMemberByIDString(ctx, memberID)
	if err != nil {
		return err
	}
	if m == nil {
		logger.Errorf("Checkout completed but no member found: %s", memberID)
		return nil
	}

	if session.Subscription == nil {
		return nil
	}
	subID := session.Subscription.ID
	return s.repo.SetMemberSubscription(ctx, m.ID, &subID, "active")
}

func (s *service) handleSubscriptionChange(ctx context.Context, sub *stripe.Subscription) error {
	m, err := s.findMemberByCustomer(ctx, customerID(sub.Customer))
	if err != nil || m == nil {
		return err
	}
	subID := sub.ID
	return s.repo.SetMemberSubscription(ctx, m.ID, &subID, string(sub.Status))
}

func (s *service) handleSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	m, err := s.findMemberByCustomer(ctx, customerID(sub.Customer))
	if err != nil || m == nil {
		return err
	}
	return s.repo.SetMemberSubscription(ctx, m.ID, nil, "canceled")
}

func (s *service) handleInvoiceCreated(ctx context.Context, inv *stripe.Invoice) error {
	m, err := s.findMemberByCustomer(ctx, customerID(inv.Customer))
	if err != nil || m == nil {
		return err
	}

	description := inv.Description
	if description == "" {
		description = fmt.Sprintf("Membership dues - %s", inv.Number)
	}
	dueDate := time.Now().Format("2006-01-02")
	if inv.DueDate > 0 {
		dueDate = time.Unix(inv.DueDate, 0).UTC().Format("2006-01-02")
	}

	stripeInvoiceID := inv.ID
	row := &Invoice{
		ClubID:          m.ClubID,
		MemberID:        m.ID,
		StripeInvoiceID: &stripeInvoiceID,
		AmountCents:     inv.AmountDue,
		Status:          InvoiceSent,
		Description:     description,
		DueDate:         &dueDate,
	}
	return s.repo.UpsertInvoice(ctx, row)
}

func (s *service) handleInvoicePaid(ctx context.Context, inv *stripe.Invoice) error {
	m, err := s.findMemberByCustomer(ctx, customerID(inv.Customer))
	if err != nil || m == nil {
		return err
	}

	if inv.ID != "" {
		if err := s.repo.SetInvoiceStatusByStripeID(ctx, inv.ID, InvoicePaid, true); err != nil {
			return err
		}
	}

	var stripePaymentID *string
	if inv.PaymentIntent != nil {
		id := inv.PaymentIntent.ID
		stripePaymentID = &id
	}
	description := fmt.Sprintf("Payment for invoice %s", inv.Number)
	return s.repo.InsertPayment(ctx, &Payment{
		ClubID:          m.ClubID,
		MemberID:        m.ID,
		StripePaymentID: stripePaymentID,
		AmountCents:     inv.AmountPaid,
		Method:          "card",
		Description:     &description,
	})
}

func (s *service) handleInvoicePaymentFailed(ctx context.Context, inv *stripe.Invoice) error {
	if inv.ID == "" {
		return nil
	}
	return s.repo.SetInvoiceStatusByStripeID(ctx, inv.ID, InvoiceOverdue, false)
}

func (s *service) findMemberByCustomer(ctx context.Context, custID string) (*billingMember, error) {
	if custID == "" {
		return nil, nil
	}
	m, err := s.repo.FindMemberByStripeCustomer(ctx, custID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			logger.Errorf("Webhook event for unknown customer: %s", custID)
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (s *service) findMemberByIDString(ctx context.Context, id string) (*billingMember, error) {
	memberID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	m, err := s.repo.FindMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Status(ctx context.Context, mc *member.MemberWithTier) (*StatusResponse, error) {
	invoices, err := s.repo.ListInvoicesForMember(ctx, mc.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPaymentsForMember(ctx, mc.ID)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{
		SubscriptionStatus: mc.SubscriptionStatus,
		Invoices:           invoices,
		Payments:           payments,
	}, nil
}
