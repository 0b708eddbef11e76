package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/supsi-dacd-isaac/stripe-testbed/model"
	"github.com/supsi-dacd-isaac/stripe-testbed/stripe"
)

// PaymentService drives payment operations against Stripe. The polling
// settings are fixed at construction and shared read-only by both waiting
// phases; human-facing output goes to out, never through the logger.
type PaymentService struct {
	client   *stripe.Client
	settings PollSettings
	out      io.Writer
}

func NewPaymentService(client *stripe.Client, settings PollSettings, out io.Writer) *PaymentService {
	return &PaymentService{client: client, settings: settings, out: out}
}

// WithOutput returns a copy of the service writing to w.
func (s *PaymentService) WithOutput(w io.Writer) *PaymentService {
	copied := *s
	copied.out = w
	return &copied
}

// CreatePayment runs the full payment lifecycle: submit a confirmed charge,
// wait for it to reach a terminal status, then wait for its balance
// transaction and report the settlement figures. A payment that ends in
// failed or canceled, or that runs out of attempts, is returned as-is; only
// transport, API and decode failures produce an error.
func (s *PaymentService) CreatePayment(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	pi, err := s.client.CreatePaymentIntent(ctx, amount, currency)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	slog.InfoContext(ctx, "Payment intent created", slog.String("id", pi.ID), slog.String("status", pi.Status))
	fmt.Fprintf(s.out, "Payment Intent created: %s\n", pi.ID)
	fmt.Fprintf(s.out, "Initial status: %s\n", pi.Status)

	pi, err = s.waitForConfirmation(ctx, pi)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "\nFinal status: %s\n", pi.Status)
	if pi.Status != model.StatusSucceeded {
		fmt.Fprintln(s.out, "Payment did not succeed")
		return pi, nil
	}

	return s.waitForSettlement(ctx, pi)
}

// waitForConfirmation polls the charge until its status is terminal.
func (s *PaymentService) waitForConfirmation(ctx context.Context, pi *model.PaymentIntent) (*model.PaymentIntent, error) {
	fmt.Fprintln(s.out, "\nWaiting for payment confirmation...")

	id := pi.ID
	pi, _, err := Wait(ctx, pi,
		func(ctx context.Context) (*model.PaymentIntent, error) {
			return s.client.GetPaymentIntent(ctx, id)
		},
		func(p *model.PaymentIntent) bool { return model.TerminalStatus(p.Status) },
		s.settings,
		PollHooks[*model.PaymentIntent]{
			OnAttempt: func(attempt int, p *model.PaymentIntent) {
				fmt.Fprintf(s.out, "Attempt %d/%d - Current status: %s\n", attempt, s.settings.MaxAttempts, p.Status)
			},
			OnWait: func(interval time.Duration) {
				fmt.Fprintf(s.out, "\nWaiting for %d seconds...\n", int(interval.Seconds()))
			},
		})
	if err != nil {
		return nil, fmt.Errorf("wait for payment confirmation: %w", err)
	}
	return pi, nil
}

// waitForSettlement polls the charge expanded with its balance transaction
// until the settlement amount is present. Readiness is structural: the
// record's own status field is not a reliable signal, only the amount is.
func (s *PaymentService) waitForSettlement(ctx context.Context, pi *model.PaymentIntent) (*model.PaymentIntent, error) {
	fmt.Fprintln(s.out, "\nWaiting for balance transaction to be available...")

	id := pi.ID
	pi, ok, err := Wait(ctx, pi,
		func(ctx context.Context) (*model.PaymentIntent, error) {
			return s.client.GetPaymentIntent(ctx, id, stripe.ExpandBalanceTransaction)
		},
		settlementAvailable,
		s.settings,
		PollHooks[*model.PaymentIntent]{
			OnAttempt: func(attempt int, p *model.PaymentIntent) {
				if !settlementAvailable(p) {
					fmt.Fprintf(s.out, "Attempt %d/%d - Waiting for balance transaction...\n", attempt, s.settings.MaxAttempts)
				}
			},
		})
	if err != nil {
		return nil, fmt.Errorf("wait for balance transaction: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "Balance transaction not available", slog.String("id", id))
		fmt.Fprintln(s.out, "No balance transaction available after waiting")
		return pi, nil
	}

	WriteTransactionDetails(s.out, pi.SettledTransaction())
	return pi, nil
}

// settlementAvailable reports whether the settlement record exists and its
// gross amount is populated. A missing sub-resource and a present one with a
// null amount both mean "not yet"; a zero amount is a valid present value.
func settlementAvailable(p *model.PaymentIntent) bool {
	bt := p.SettledTransaction()
	return bt != nil && bt.Amount != nil
}
