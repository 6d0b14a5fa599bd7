package service

import (
	"context"
	"errors"
	"fmt"
	"saree-checkout/internal/client"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"
	"saree-checkout/internal/signature"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RazorpayService interface {
	// CreateOrder opens a provider order for amount rupees and returns it
	// together with the public key id the checkout widget needs.
	CreateOrder(ctx context.Context, req *RazorpayOrderInput) (*RazorpayCheckout, error)
	// VerifyPayment checks the signature the checkout widget returned and
	// converts the caller's cart into a paid order.
	VerifyPayment(ctx context.Context, userID string, req *RazorpayVerifyInput) (*model.Order, error)
}

type RazorpayOrderInput struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

type RazorpayCheckout struct {
	Order map[string]interface{} `json:"order"`
	Key   string                 `json:"key"`
}

type RazorpayVerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

type razorpayServiceImpl struct {
	razorpayClient client.RazorpayClient
	orderRepo      repository.OrderRepository
	orderService   OrderService
}

func NewRazorpayService(
	razorpayClient client.RazorpayClient,
	orderRepo repository.OrderRepository,
	orderService OrderService,
) RazorpayService {
	return &razorpayServiceImpl{
		razorpayClient: razorpayClient,
		orderRepo:      orderRepo,
		orderService:   orderService,
	}
}

func (s *razorpayServiceImpl) CreateOrder(ctx context.Context, req *RazorpayOrderInput) (*RazorpayCheckout, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !s.razorpayClient.Configured() {
		return nil, ErrServerConfig
	}

	currency := req.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = "rcpt_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	// rupees to paise
	paise := req.Amount.Shift(2).Round(0).IntPart()

	order, err := s.razorpayClient.CreateOrder(ctx, &client.RazorpayOrderRequest{
		Amount:   paise,
		Currency: currency,
		Receipt:  receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderCommunication, err)
	}

	return &RazorpayCheckout{
		Order: order,
		Key:   s.razorpayClient.KeyID(),
	}, nil
}

func (s *razorpayServiceImpl) VerifyPayment(ctx context.Context, userID string, req *RazorpayVerifyInput) (*model.Order, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, ErrMissingFields
	}
	if !s.razorpayClient.Configured() {
		return nil, ErrServerConfig
	}

	scheme := signature.HMAC{Secret: s.razorpayClient.KeySecret()}
	fields := map[string]string{
		signature.FieldOrderID:   req.OrderID,
		signature.FieldPaymentID: req.PaymentID,
	}
	if !scheme.Verify(fields, req.Signature) {
		log.Warnf("razorpay signature mismatch for order %s", req.OrderID)
		return nil, ErrInvalidSignature
	}

	if userID == "" {
		return nil, ErrUnauthorized
	}

	// a replayed verify returns the order it already produced
	existing, err := s.orderRepo.FindByRazorpayOrderID(ctx, req.OrderID)
	switch {
	case err == nil:
		if existing.UserID != userID {
			return nil, ErrDuplicateOrder
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("get order: %w", err)
	}

	order, err := s.orderService.PlaceOrder(ctx, userID, &Placement{
		Method:          model.PaymentMethodRazorpay,
		Status:          model.OrderStatusPaid,
		RazorpayOrderID: req.OrderID,
		RazorpayPayment: req.PaymentID,
		RazorpaySig:     req.Signature,
	})
	if errors.Is(err, ErrDuplicateOrder) {
		// lost a race with a concurrent verify of the same payment
		existing, findErr := s.orderRepo.FindByRazorpayOrderID(ctx, req.OrderID)
		if findErr == nil && existing.UserID == userID {
			return existing, nil
		}
	}
	return order, err
}
