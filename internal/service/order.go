package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle. Every successful completion path
// ends in the same state: an order exists in its final status and the
// owner's cart has been cleared once, in the same transaction.
type OrderService interface {
	// PlaceOrder converts the caller's cart into an order in one step.
	PlaceOrder(ctx context.Context, userID string, placement *Placement) (*model.Order, error)
	CreateCODOrder(ctx context.Context, userID string) (*model.Order, error)
	// OpenGatewayOrder records a gateway order before the buyer leaves
	// for the gateway's payment page. The cart is left untouched.
	OpenGatewayOrder(ctx context.Context, userID, pgOrderID string) (*model.Order, error)
	// MarkGatewayPaid completes an opened gateway order. Calling it again
	// for a paid order changes nothing.
	MarkGatewayPaid(ctx context.Context, pgOrderID string, payment *repository.GatewayPayment) (*model.Order, error)
	MarkGatewayFailed(ctx context.Context, pgOrderID string, raw json.RawMessage) error
	FindByGatewayOrderID(ctx context.Context, pgOrderID string) (*model.Order, error)
	ListOrders(ctx context.Context, userID string) ([]*model.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
}

// Placement describes a single-step order: its payment method, the status
// it is born with and any provider references.
type Placement struct {
	Method          model.PaymentMethod
	Status          model.OrderStatus
	RequireAddress  bool
	RazorpayOrderID string
	RazorpayPayment string
	RazorpaySig     string
}

type orderServiceImpl struct {
	db          *gorm.DB
	snapshotter *Snapshotter
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
}

func NewOrderService(
	db *gorm.DB,
	snapshotter *Snapshotter,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		snapshotter: snapshotter,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
	}
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID string, placement *Placement) (*model.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	snapshot, err := s.snapshotter.SnapshotCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	shippingAddress := s.snapshotter.SnapshotAddress(ctx, userID)
	if placement.RequireAddress && shippingAddress == nil {
		return nil, ErrMissingShippingAddress
	}

	order := &model.Order{
		ID:                uuid.NewString(),
		UserID:            userID,
		Items:             snapshot.Items,
		Amount:            snapshot.Amount,
		Currency:          model.DefaultCurrency,
		Status:            placement.Status,
		PaymentMethod:     placement.Method,
		RazorpayOrderID:   optional(placement.RazorpayOrderID),
		RazorpayPaymentID: optional(placement.RazorpayPayment),
		RazorpaySignature: optional(placement.RazorpaySig),
		ShippingAddress:   shippingAddress,
	}

	_, err = s.complete(ctx, userID, func(tx *gorm.DB) (bool, error) {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return false, fmt.Errorf("store order in db: %w", err)
		}
		return true, nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateOrder
	}
	if err != nil {
		return nil, err
	}

	log.Infof("order %s placed: method=%s status=%s amount=%d", order.ID, order.PaymentMethod, order.Status, order.Amount)
	return order, nil
}

func (s *orderServiceImpl) CreateCODOrder(ctx context.Context, userID string) (*model.Order, error) {
	return s.PlaceOrder(ctx, userID, &Placement{
		Method:         model.PaymentMethodCOD,
		Status:         model.OrderStatusPending,
		RequireAddress: true,
	})
}

func (s *orderServiceImpl) OpenGatewayOrder(ctx context.Context, userID, pgOrderID string) (*model.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	snapshot, err := s.snapshotter.SnapshotCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           snapshot.Items,
		Amount:          snapshot.Amount,
		Currency:        model.DefaultCurrency,
		Status:          model.OrderStatusCreated,
		PaymentMethod:   model.PaymentMethodGateway,
		PgOrderID:       &pgOrderID,
		ShippingAddress: s.snapshotter.SnapshotAddress(ctx, userID),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateOrder
	}
	if err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) MarkGatewayPaid(ctx context.Context, pgOrderID string, payment *repository.GatewayPayment) (*model.Order, error) {
	order, err := s.FindByGatewayOrderID(ctx, pgOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusPaid {
		return order, nil
	}

	changed, err := s.complete(ctx, order.UserID, func(tx *gorm.DB) (bool, error) {
		changed, err := s.orderRepo.MarkPaid(ctx, tx, pgOrderID, payment)
		if err != nil {
			return false, fmt.Errorf("mark order paid: %w", err)
		}
		return changed, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		log.Infof("gateway order %s paid: order=%s transaction=%s", pgOrderID, order.ID, payment.TransactionID)
	}

	return s.FindByGatewayOrderID(ctx, pgOrderID)
}

func (s *orderServiceImpl) MarkGatewayFailed(ctx context.Context, pgOrderID string, raw json.RawMessage) error {
	changed, err := s.orderRepo.MarkFailed(ctx, s.db, pgOrderID, raw)
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	if changed {
		log.Infof("gateway order %s failed", pgOrderID)
	}
	return nil
}

func (s *orderServiceImpl) FindByGatewayOrderID(ctx context.Context, pgOrderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByPgOrderID(ctx, pgOrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	order, err := s.orderRepo.FindByUserAndID(ctx, userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// complete runs mutate and, if it reports a state change, clears the
// owner's cart in the same transaction. The cart is never cleared unless
// the order write commits with it.
func (s *orderServiceImpl) complete(ctx context.Context, userID string, mutate func(tx *gorm.DB) (bool, error)) (bool, error) {
	var changed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		changed, err = mutate(tx)
		if err != nil || !changed {
			return err
		}

		if _, err := s.cartRepo.Clear(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})

	return changed, err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
