package model

import "encoding/json"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// TerminalStatus reports whether a payment intent status can no longer change.
func TerminalStatus(status string) bool {
	switch status {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

type PaymentIntent struct {
	ID           string  `json:"id"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	Created      int64   `json:"created"`
	LatestCharge *Charge `json:"latest_charge"`
}

// SettledTransaction returns the expanded balance transaction, or nil when the
// charge or transaction has not been expanded yet.
func (p *PaymentIntent) SettledTransaction() *BalanceTransaction {
	if p == nil || p.LatestCharge == nil {
		return nil
	}
	return p.LatestCharge.BalanceTransaction
}

// Charge arrives either as a bare id string or as an expanded object,
// depending on the expand[] parameters of the request.
type Charge struct {
	ID                 string
	Created            int64
	BalanceTransaction *BalanceTransaction
}

func (c *Charge) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.ID)
	}
	var obj struct {
		ID                 string              `json:"id"`
		Created            int64               `json:"created"`
		BalanceTransaction *BalanceTransaction `json:"balance_transaction"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.ID = obj.ID
	c.Created = obj.Created
	c.BalanceTransaction = obj.BalanceTransaction
	return nil
}

// BalanceTransaction is the settlement record of a charge. Amount is a
// pointer because its presence is the readiness signal: the record may exist
// with a null amount while settlement is still in flight.
type BalanceTransaction struct {
	ID          string
	Amount      *int64
	Fee         int64
	Net         int64
	Currency    string
	Status      string
	AvailableOn int64
	FeeDetails  []FeeDetail
}

func (b *BalanceTransaction) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.ID)
	}
	var obj struct {
		ID          string      `json:"id"`
		Amount      *int64      `json:"amount"`
		Fee         int64       `json:"fee"`
		Net         int64       `json:"net"`
		Currency    string      `json:"currency"`
		Status      string      `json:"status"`
		AvailableOn int64       `json:"available_on"`
		FeeDetails  []FeeDetail `json:"fee_details"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BalanceTransaction{
		ID:          obj.ID,
		Amount:      obj.Amount,
		Fee:         obj.Fee,
		Net:         obj.Net,
		Currency:    obj.Currency,
		Status:      obj.Status,
		AvailableOn: obj.AvailableOn,
		FeeDetails:  obj.FeeDetails,
	}
	return nil
}

// GrossAmount returns the settled amount, or zero when it is not present yet.
func (b *BalanceTransaction) GrossAmount() int64 {
	if b == nil || b.Amount == nil {
		return 0
	}
	return *b.Amount
}

type FeeDetail struct {
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type BalanceAmount struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type Balance struct {
	Pending   []BalanceAmount `json:"pending"`
	Available []BalanceAmount `json:"available"`
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Refund struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type Card struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Card *Card  `json:"card"`
}

// List is the envelope Stripe wraps collection responses in.
type List[T any] struct {
	Data []T `json:"data"`
}
