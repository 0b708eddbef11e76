package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supsi-dacd-isaac/stripe-testbed/model"
	"github.com/supsi-dacd-isaac/stripe-testbed/stripe"
)

// The operations below are thin request/response glue around the gateway:
// one call, one report, no retry logic.

func (s *PaymentService) GetBalance(ctx context.Context) (*model.Balance, error) {
	bal, err := s.client.GetBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve balance: %w", err)
	}
	WriteBalance(s.out, bal)
	return bal, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	payments, err := s.client.ListPaymentIntents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	WritePayments(s.out, payments)
	return payments, nil
}

func (s *PaymentService) CreateCustomer(ctx context.Context, email, name, description string) (*model.Customer, error) {
	customer, err := s.client.CreateCustomer(ctx, email, name, description)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	slog.InfoContext(ctx, "Customer created", slog.String("id", customer.ID))
	WriteCustomer(s.out, customer)
	return customer, nil
}

// CreateRefund refunds the latest charge of a payment intent. A payment with
// no charge is a normal reportable outcome: the refund is nil and err is nil.
func (s *PaymentService) CreateRefund(ctx context.Context, paymentID string) (*model.Refund, error) {
	pi, err := s.client.GetPaymentIntent(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	if pi.LatestCharge == nil || pi.LatestCharge.ID == "" {
		fmt.Fprintln(s.out, "No charge found for this payment intent")
		return nil, nil
	}

	refund, err := s.client.CreateRefund(ctx, pi.LatestCharge.ID)
	if err != nil {
		return nil, fmt.Errorf("create refund: %w", err)
	}
	slog.InfoContext(ctx, "Refund created", slog.String("id", refund.ID), slog.String("charge", pi.LatestCharge.ID))
	WriteRefund(s.out, refund)
	return refund, nil
}

func (s *PaymentService) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	methods, err := s.client.ListPaymentMethods(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	WritePaymentMethods(s.out, methods)
	return methods, nil
}

// PaymentDetails retrieves a payment with its settlement record expanded and
// reports amounts and timestamps. A payment with no charge yet is a normal
// outcome, reported but not expanded further.
func (s *PaymentService) PaymentDetails(ctx context.Context, paymentID string) (*model.PaymentIntent, error) {
	pi, err := s.client.GetPaymentIntent(ctx, paymentID, stripe.ExpandBalanceTransaction)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment details: %w", err)
	}
	if pi.LatestCharge == nil {
		fmt.Fprintln(s.out, "No charge found for this payment intent")
		return pi, nil
	}
	WritePaymentDetails(s.out, pi)
	return pi, nil
}
