package service

import (
	"context"
	"errors"
	"saree-checkout/internal/client"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"
)

type mockRazorpayClient struct {
	keyID     string
	keySecret string
	lastReq   *client.RazorpayOrderRequest
	err       error
}

func (m *mockRazorpayClient) Configured() bool  { return m.keyID != "" && m.keySecret != "" }
func (m *mockRazorpayClient) KeyID() string     { return m.keyID }
func (m *mockRazorpayClient) KeySecret() string { return m.keySecret }

func (m *mockRazorpayClient) CreateOrder(ctx context.Context, req *client.RazorpayOrderRequest) (map[string]interface{}, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return map[string]interface{}{
		"id":       "order_rzp_1",
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}, nil
}

type mockGatewayClient struct {
	configured  bool
	redirectURL string
	createErr   error
	status      *client.GatewayStatus
	statusErr   error

	mu          sync.Mutex
	lastFields  map[string]string
	statusCalls atomic.Int32
}

func (m *mockGatewayClient) Configured() bool { return m.configured }

func (m *mockGatewayClient) CreatePaymentRequest(ctx context.Context, fields map[string]string) (string, error) {
	m.mu.Lock()
	m.lastFields = fields
	m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.redirectURL, nil
}

func (m *mockGatewayClient) PaymentStatus(ctx context.Context, orderID string) (*client.GatewayStatus, error) {
	m.statusCalls.Add(1)
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}

type mockSMSClient struct {
	configured bool
	err        error
	messages   []string
}

func (m *mockSMSClient) Configured() bool { return m.configured }

func (m *mockSMSClient) Send(ctx context.Context, phone, message string) error {
	m.messages = append(m.messages, message)
	return m.err
}

// countingCartRepo records how many times a cart was actually emptied.
type countingCartRepo struct {
	repository.CartRepository
	clears atomic.Int32
}

func (r *countingCartRepo) Clear(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	n, err := r.CartRepository.Clear(ctx, tx, userID)
	if n > 0 {
		r.clears.Add(1)
	}
	return n, err
}

// failingAddressRepo simulates a datastore outage on address lookup.
type failingAddressRepo struct{}

func (failingAddressRepo) FindByUser(ctx context.Context, userID string) (*model.Address, error) {
	return nil, errors.New("connection reset")
}

func userWithPhone(id, phone string) *model.User {
	return &model.User{ID: id, Name: "User", Phone: &phone}
}
