package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent_RequestShape(t *testing.T) {
	var captured *http.Request
	var form map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte(`{"id":"pi_1","status":"processing","amount":1000,"currency":"chf"}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_abc").WithBaseURL(server.URL)
	pi, err := client.CreatePaymentIntent(context.Background(), 1000, "chf")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", pi.ID)
	assert.Equal(t, "processing", pi.Status)

	user, pass, ok := captured.BasicAuth()
	require.True(t, ok, "basic auth must be set")
	assert.Equal(t, "sk_test_abc", user)
	assert.Empty(t, pass)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/payment_intents", captured.URL.Path)
	assert.Equal(t, []string{"1000"}, form["amount"])
	assert.Equal(t, []string{"chf"}, form["currency"])
	assert.Equal(t, []string{"true"}, form["confirm"])
	assert.Equal(t, []string{"pm_card_visa"}, form["payment_method"])
	assert.Equal(t, []string{"card"}, form["payment_method_types[]"])
	assert.NotEmpty(t, captured.Header.Get("Idempotency-Key"))
}

func TestGetPaymentIntent_ExpandQuery(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_abc").WithBaseURL(server.URL)
	_, err := client.GetPaymentIntent(context.Background(), "pi_1", ExpandBalanceTransaction)
	require.NoError(t, err)

	assert.Equal(t, "/payment_intents/pi_1", captured.URL.Path)
	assert.Equal(t, []string{"latest_charge.balance_transaction"}, captured.URL.Query()["expand[]"])
}

func TestCall_DeclinedCardSurfacesAPIError(t *testing.T) {
	body := `{"error":{"message":"card declined"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient("sk_test_abc").WithBaseURL(server.URL)
	_, err := client.CreatePaymentIntent(context.Background(), 1000, "chf")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, body, apiErr.Body)
}

func TestCall_MalformedSuccessBodyIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": `))
	}))
	defer server.Close()

	client := NewClient("sk_test_abc").WithBaseURL(server.URL)
	_, err := client.GetBalance(context.Background())
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCall_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("sk_test_abc").WithBaseURL(server.URL)
	_, err := client.GetBalance(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	var decodeErr *DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestListPaymentIntents_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[{"id":"pi_1","amount":500,"currency":"chf","status":"succeeded"}]}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_abc").WithBaseURL(server.URL)
	payments, err := client.ListPaymentIntents(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "pi_1", payments[0].ID)
}
