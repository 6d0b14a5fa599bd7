package handler

import (
	"context"
	"saree-checkout/internal/model"
	"saree-checkout/internal/service"
)

type mockGatewayService struct {
	orderID    string
	err        error
	lastFields map[string]string
}

func (m *mockGatewayService) CreatePayment(ctx context.Context, userID string, req *service.GatewayPaymentInput) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "https://pg.example.com/pay/" + req.OrderID, nil
}

func (m *mockGatewayService) HandleSuccess(ctx context.Context, fields map[string]string) (string, error) {
	m.lastFields = fields
	if m.err != nil {
		return "", m.err
	}
	return m.orderID, nil
}

func (m *mockGatewayService) HandleFailure(ctx context.Context, fields map[string]string) (string, error) {
	m.lastFields = fields
	if m.err != nil {
		return "", m.err
	}
	return fields["order_id"], nil
}

type mockOrderService struct {
	service.OrderService
	order  *model.Order
	err    error
	userID string
}

func (m *mockOrderService) CreateCODOrder(ctx context.Context, userID string) (*model.Order, error) {
	m.userID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockOrderService) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	m.userID = userID
	if m.err != nil {
		return nil, m.err
	}
	if orderID != m.order.ID {
		return nil, service.ErrOrderNotFound
	}
	return m.order, nil
}

type mockAuthService struct {
	user  *model.User
	token string
	err   error
}

func (m *mockAuthService) SendOTP(ctx context.Context, phone string) error {
	return m.err
}

func (m *mockAuthService) VerifyOTP(ctx context.Context, phone, otp string) (*model.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}
