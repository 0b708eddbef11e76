package stripe

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/supsi-dacd-isaac/stripe-testbed/model"
)

// ExpandBalanceTransaction is the expansion path that inlines a payment
// intent's settlement record two levels deep.
const ExpandBalanceTransaction = "latest_charge.balance_transaction"

// CreatePaymentIntent creates a card payment with synchronous confirmation
// against the pm_card_visa test instrument. An idempotency key guards the
// mutation against accidental duplicates on network replays.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("confirm", "true")
	form.Set("payment_method", "pm_card_visa")
	form.Add("payment_method_types[]", "card")

	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var pi model.PaymentIntent
	if err := c.postForm(ctx, "/payment_intents", form, headers, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

// GetPaymentIntent retrieves a payment intent, optionally expanding nested
// sub-resources via dotted expand[] paths.
func (c *Client) GetPaymentIntent(ctx context.Context, id string, expand ...string) (*model.PaymentIntent, error) {
	var query url.Values
	if len(expand) > 0 {
		query = url.Values{}
		for _, path := range expand {
			query.Add("expand[]", path)
		}
	}
	var pi model.PaymentIntent
	if err := c.get(ctx, "/payment_intents/"+id, query, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func (c *Client) ListPaymentIntents(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var list model.List[model.PaymentIntent]
	if err := c.get(ctx, "/payment_intents", query, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

func (c *Client) GetBalance(ctx context.Context) (*model.Balance, error) {
	var bal model.Balance
	if err := c.get(ctx, "/balance", nil, &bal); err != nil {
		return nil, err
	}
	return &bal, nil
}

func (c *Client) CreateCustomer(ctx context.Context, email, name, description string) (*model.Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)
	if description != "" {
		form.Set("description", description)
	}

	var customer model.Customer
	if err := c.postForm(ctx, "/customers", form, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) CreateRefund(ctx context.Context, chargeID string) (*model.Refund, error) {
	form := url.Values{}
	form.Set("charge", chargeID)
	form.Set("reason", "requested_by_customer")

	var refund model.Refund
	if err := c.postForm(ctx, "/refunds", form, nil, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (c *Client) ListPaymentMethods(ctx context.Context, limit int) ([]model.PaymentMethod, error) {
	query := url.Values{}
	query.Set("type", "card")
	query.Set("limit", strconv.Itoa(limit))

	var list model.List[model.PaymentMethod]
	if err := c.get(ctx, "/payment_methods", query, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}
