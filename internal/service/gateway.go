package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"saree-checkout/internal/client"
	"saree-checkout/internal/config"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"
	"saree-checkout/internal/signature"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/singleflight"
)

const hashField = "hash"

// GatewayService drives the two-phase hash-callback gateway: an order is
// opened before the buyer is redirected, and settled when the gateway
// calls back.
type GatewayService interface {
	CreatePayment(ctx context.Context, userID string, req *GatewayPaymentInput) (string, error)
	// HandleSuccess settles a success callback and returns the internal
	// order id. Safe to call any number of times for the same payment.
	HandleSuccess(ctx context.Context, fields map[string]string) (string, error)
	// HandleFailure records a failure callback and returns the gateway
	// order id it referenced, if any.
	HandleFailure(ctx context.Context, fields map[string]string) (string, error)
}

type GatewayPaymentInput struct {
	OrderID string
	Name    string
	Email   string
	Phone   string
}

type gatewayServiceImpl struct {
	gatewayClient client.GatewayClient
	orderService  OrderService
	cfg           *config.Gateway
	backendURL    string
	settling      singleflight.Group
}

func NewGatewayService(
	gatewayClient client.GatewayClient,
	orderService OrderService,
	cfg *config.Gateway,
	backendURL string,
) GatewayService {
	return &gatewayServiceImpl{
		gatewayClient: gatewayClient,
		orderService:  orderService,
		cfg:           cfg,
		backendURL:    backendURL,
	}
}

func (s *gatewayServiceImpl) CreatePayment(ctx context.Context, userID string, req *GatewayPaymentInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return "", ErrMissingFields
	}
	if !s.gatewayClient.Configured() {
		return "", ErrServerConfig
	}

	pgOrderID := req.OrderID
	if pgOrderID == "" {
		pgOrderID = uuid.NewString()
	}

	order, err := s.orderService.OpenGatewayOrder(ctx, userID, pgOrderID)
	if err != nil {
		return "", err
	}

	city, zip := s.cfg.DefaultCity, s.cfg.DefaultZip
	if addr := order.ShippingAddress; addr != nil {
		if addr.City != "" {
			city = addr.City
		}
		if addr.Pincode != "" {
			zip = addr.Pincode
		}
	}

	redirectURL, err := s.gatewayClient.CreatePaymentRequest(ctx, map[string]string{
		"order_id":           pgOrderID,
		"amount":             strconv.FormatInt(order.Amount, 10),
		"currency":           model.DefaultCurrency,
		"description":        "Order Payment",
		"name":               req.Name,
		"email":              req.Email,
		"phone":              req.Phone,
		"city":               city,
		"country":            "IND",
		"zip_code":           zip,
		"return_url":         s.backendURL + "/api/payment/success",
		"return_url_failure": s.backendURL + "/api/payment/failure",
		"mode":               s.cfg.Mode,
	})
	if err != nil {
		// the created order stays behind; a later callback or reconciliation can still settle it
		log.Errorf("gateway payment request for order %s: %v", pgOrderID, err)
		return "", fmt.Errorf("%w: %v", ErrProviderCommunication, err)
	}

	return redirectURL, nil
}

func (s *gatewayServiceImpl) HandleSuccess(ctx context.Context, fields map[string]string) (string, error) {
	if s.cfg.Salt == "" {
		return "", ErrServerConfig
	}

	payload, claimed := splitHash(fields)
	if !(signature.SaltedHash{Salt: s.cfg.Salt}).Verify(payload, claimed) {
		log.Warnf("hash mismatch in gateway success callback for order %s", payload[signature.FieldOrderID])
		return "", ErrHashMismatch
	}

	pgOrderID := payload[signature.FieldOrderID]
	if pgOrderID == "" {
		return "", ErrOrderNotFound
	}

	// duplicate deliveries arriving together share one settlement
	v, err, _ := s.settling.Do(pgOrderID, func() (interface{}, error) {
		return s.settle(ctx, pgOrderID, payload)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *gatewayServiceImpl) settle(ctx context.Context, pgOrderID string, payload map[string]string) (string, error) {
	order, err := s.orderService.FindByGatewayOrderID(ctx, pgOrderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warnf("gateway success callback for unknown order %s", pgOrderID)
		}
		return "", err
	}
	if order.Status == model.OrderStatusPaid {
		return order.ID, nil
	}

	status, err := s.gatewayClient.PaymentStatus(ctx, pgOrderID)
	if err != nil {
		log.Errorf("gateway payment status for order %s: %v", pgOrderID, err)
		return "", fmt.Errorf("%w: %v", ErrProviderCommunication, err)
	}
	if !status.Succeeded() {
		log.Warnf("gateway did not confirm payment for order %s: response_code=%q status=%q payment_status=%q",
			pgOrderID, status.ResponseCode, status.Status, status.PaymentStatus)
		return "", ErrPaymentNotConfirmed
	}

	transactionID := payload["transaction_id"]
	if transactionID == "" {
		transactionID = status.TransactionID
	}

	paid, err := s.orderService.MarkGatewayPaid(ctx, pgOrderID, &repository.GatewayPayment{
		TransactionID: transactionID,
		ResponseCode:  status.ResponseCode,
		RawResponse:   status.Raw,
	})
	if err != nil {
		return "", err
	}
	if paid.Status != model.OrderStatusPaid {
		// the conditional update matched nothing and the order is not paid
		return "", fmt.Errorf("order %s left in status %s", paid.ID, paid.Status)
	}

	return paid.ID, nil
}

func (s *gatewayServiceImpl) HandleFailure(ctx context.Context, fields map[string]string) (string, error) {
	payload, claimed := splitHash(fields)
	if claimed != "" && !(signature.SaltedHash{Salt: s.cfg.Salt}).Verify(payload, claimed) {
		log.Warnf("hash mismatch in gateway failure callback for order %s", payload[signature.FieldOrderID])
	}

	pgOrderID := payload[signature.FieldOrderID]
	if pgOrderID == "" {
		return "", nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal callback payload: %w", err)
	}

	if err := s.orderService.MarkGatewayFailed(ctx, pgOrderID, raw); err != nil {
		return "", err
	}
	return pgOrderID, nil
}

// splitHash copies fields without the hash entry and returns the hash
// separately.
func splitHash(fields map[string]string) (map[string]string, string) {
	payload := make(map[string]string, len(fields))
	for k, v := range fields {
		if k != hashField {
			payload[k] = v
		}
	}
	return payload, fields[hashField]
}
