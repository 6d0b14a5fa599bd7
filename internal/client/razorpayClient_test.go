package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"saree-checkout/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_id", user)
		assert.Equal(t, "rzp_secret", pass)

		var req RazorpayOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(180000), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.NotNil(t, req.Notes)

		_, _ = w.Write([]byte(`{"id":"order_9A33XWu170gUtm","amount":180000,"status":"created"}`))
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL, KeyID: "rzp_id", KeySecret: "rzp_secret", Timeout: time.Second})
	require.True(t, c.Configured())

	order, err := c.CreateOrder(context.Background(), &RazorpayOrderRequest{Amount: 180000, Currency: "INR", Receipt: "rcpt_1"})
	require.NoError(t, err)
	assert.Equal(t, "order_9A33XWu170gUtm", order["id"])
}

func TestRazorpayClient_CreateOrder_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL, KeyID: "a", KeySecret: "b", Timeout: time.Second})
	_, err := c.CreateOrder(context.Background(), &RazorpayOrderRequest{Amount: 1, Currency: "INR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestRazorpayClient_NotConfigured(t *testing.T) {
	c := NewRazorpayClient(&config.Razorpay{KeyID: "only-id"})
	assert.False(t, c.Configured())
}
