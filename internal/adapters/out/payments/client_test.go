package payments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/payments"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func newTestClient(t *testing.T, baseURL string) *payments.Client {
	t.Helper()
	client, err := payments.NewClient(payments.Config{
		BaseURL: baseURL,
		APIKey:  "sk_test_123",
	}, slog.Default())
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := payments.NewClient(payments.Config{BaseURL: "http://localhost"}, slog.Default())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRefund_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/refunds", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"refund_id": "re_42",
			"status":    "succeeded",
		})
	}))
	defer server.Close()

	amount, err := kernel.NewMoney(2599)
	require.NoError(t, err)

	refundID, err := newTestClient(t, server.URL).Refund(context.Background(), "pay_777", amount)
	require.NoError(t, err)

	assert.Equal(t, "re_42", refundID)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "pay_777", gotBody["payment_ref"])
	assert.Equal(t, float64(2599), gotBody["amount_minor"])
}

func TestRefund_ProviderErrorIsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":"insufficient captured funds"}`))
	}))
	defer server.Close()

	amount, err := kernel.NewMoney(100)
	require.NoError(t, err)

	_, err = newTestClient(t, server.URL).Refund(context.Background(), "pay_777", amount)
	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	assert.Contains(t, err.Error(), "insufficient captured funds")
}

func TestRefund_EmptyRefundIDRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "succeeded"})
	}))
	defer server.Close()

	amount, err := kernel.NewMoney(100)
	require.NoError(t, err)

	_, err = newTestClient(t, server.URL).Refund(context.Background(), "pay_777", amount)
	assert.ErrorIs(t, err, errs.ErrUpstreamFailure)
}

func TestRefund_EmptyPaymentRefRejected(t *testing.T) {
	amount, err := kernel.NewMoney(100)
	require.NoError(t, err)

	_, err = newTestClient(t, "http://localhost:1").Refund(context.Background(), "", amount)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
