package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentIntent_UnexpandedCharge(t *testing.T) {
	var pi PaymentIntent
	err := json.Unmarshal([]byte(`{"id":"pi_1","status":"succeeded","latest_charge":"ch_1"}`), &pi)
	require.NoError(t, err)

	require.NotNil(t, pi.LatestCharge)
	assert.Equal(t, "ch_1", pi.LatestCharge.ID)
	assert.Nil(t, pi.LatestCharge.BalanceTransaction)
	assert.Nil(t, pi.SettledTransaction())
}

func TestPaymentIntent_ExpandedBalanceTransaction(t *testing.T) {
	raw := `{
		"id": "pi_1",
		"status": "succeeded",
		"latest_charge": {
			"id": "ch_1",
			"created": 1700000000,
			"balance_transaction": {
				"id": "txn_1",
				"amount": 1000,
				"fee": 59,
				"net": 941,
				"currency": "chf",
				"status": "pending",
				"fee_details": [
					{"type": "stripe_fee", "amount": 59, "currency": "chf", "description": "Processing fee"}
				]
			}
		}
	}`
	var pi PaymentIntent
	require.NoError(t, json.Unmarshal([]byte(raw), &pi))

	bt := pi.SettledTransaction()
	require.NotNil(t, bt)
	assert.Equal(t, int64(1000), bt.GrossAmount())
	assert.Equal(t, int64(59), bt.Fee)
	assert.Equal(t, int64(941), bt.Net)
	require.Len(t, bt.FeeDetails, 1)
	assert.Equal(t, "stripe_fee", bt.FeeDetails[0].Type)
}

func TestBalanceTransaction_AmountPresence(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		present bool
	}{
		{"unexpanded id", `"txn_1"`, false},
		{"null amount", `{"id":"txn_1","amount":null}`, false},
		{"zero amount", `{"id":"txn_1","amount":0}`, true},
		{"positive amount", `{"id":"txn_1","amount":1200}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bt BalanceTransaction
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &bt))
			assert.Equal(t, tt.present, bt.Amount != nil)
		})
	}
}

func TestTerminalStatus(t *testing.T) {
	assert.True(t, TerminalStatus(StatusSucceeded))
	assert.True(t, TerminalStatus(StatusFailed))
	assert.True(t, TerminalStatus(StatusCanceled))
	assert.False(t, TerminalStatus("processing"))
	assert.False(t, TerminalStatus("requires_action"))
	assert.False(t, TerminalStatus(""))
}
