package service

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supsi-dacd-isaac/stripe-testbed/stripe"
)

func newGlueService(t *testing.T, handler http.HandlerFunc) (*PaymentService, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	out := &bytes.Buffer{}
	client := stripe.NewClient("sk_test_abc").WithBaseURL(server.URL)
	settings := PollSettings{CheckInterval: time.Second, MaxAttempts: 6}
	return NewPaymentService(client, settings, out), out
}

func TestCreateRefund_RefundsLatestCharge(t *testing.T) {
	var refundForm map[string][]string
	svc, out := newGlueService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/payment_intents/pi_1":
			w.Write([]byte(`{"id":"pi_1","status":"succeeded","latest_charge":"ch_1"}`))
		case "/refunds":
			require.NoError(t, r.ParseForm())
			refundForm = r.PostForm
			w.Write([]byte(`{"id":"re_1","amount":1000,"currency":"chf","status":"succeeded"}`))
		default:
			http.NotFound(w, r)
		}
	})

	refund, err := svc.CreateRefund(context.Background(), "pi_1")
	require.NoError(t, err)
	require.NotNil(t, refund)
	assert.Equal(t, "re_1", refund.ID)
	assert.Equal(t, []string{"ch_1"}, refundForm["charge"])
	assert.Equal(t, []string{"requested_by_customer"}, refundForm["reason"])
	assert.Contains(t, out.String(), "Refund Created:")
}

func TestCreateRefund_NoCharge(t *testing.T) {
	svc, out := newGlueService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pi_1","status":"processing"}`))
	})

	refund, err := svc.CreateRefund(context.Background(), "pi_1")
	require.NoError(t, err, "a payment without a charge is a reportable outcome")
	assert.Nil(t, refund)
	assert.Contains(t, out.String(), "No charge found for this payment intent")
}

func TestPaymentDetails_ExpandsSettlement(t *testing.T) {
	svc, out := newGlueService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"latest_charge.balance_transaction"}, r.URL.Query()["expand[]"])
		w.Write([]byte(settledBody))
	})

	_, err := svc.PaymentDetails(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Payment Details:")
	assert.Contains(t, out.String(), "Gross amount: 1000 chf")
}

func TestGetBalance_Report(t *testing.T) {
	svc, out := newGlueService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pending":[{"currency":"chf","amount":1000}],"available":[{"currency":"chf","amount":250}]}`))
	})

	bal, err := svc.GetBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, bal.Pending, 1)
	assert.Contains(t, out.String(), "Pending : (chf,1000)")
	assert.Contains(t, out.String(), "Available: (chf,250)")
}
