package repository

import (
	"context"
	"encoding/json"
	"saree-checkout/internal/model"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindByUserAndID(ctx context.Context, userID, orderID string) (*model.Order, error)
	FindByPgOrderID(ctx context.Context, pgOrderID string) (*model.Order, error)
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, pgOrderID string, payment *GatewayPayment) (bool, error)
	MarkFailed(ctx context.Context, tx *gorm.DB, pgOrderID string, raw json.RawMessage) (bool, error)
}

// GatewayPayment is what a confirmed gateway payment records on its order.
type GatewayPayment struct {
	TransactionID string
	ResponseCode  string
	RawResponse   json.RawMessage
}

// statuses a gateway order may be marked paid from; a provider-confirmed
// success overrides an earlier failure callback
var payableStatuses = []model.OrderStatus{model.OrderStatusCreated, model.OrderStatusFailed}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	return r.first(ctx, "id = ?", orderID)
}

func (r *orderRepoImpl) FindByUserAndID(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return r.first(ctx, "id = ? AND user_id = ?", orderID, userID)
}

func (r *orderRepoImpl) FindByPgOrderID(ctx context.Context, pgOrderID string) (*model.Order, error) {
	return r.first(ctx, "pg_order_id = ?", pgOrderID)
}

func (r *orderRepoImpl) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.Order, error) {
	return r.first(ctx, "razorpay_order_id = ?", razorpayOrderID)
}

func (r *orderRepoImpl) first(ctx context.Context, query string, args ...interface{}) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where(query, args...).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// MarkPaid moves a gateway order to paid. It reports false when the order
// was not in a payable status, including when it is already paid.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, pgOrderID string, payment *GatewayPayment) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where(`
			pg_order_id = ?
			AND status IN ?
		`,
			pgOrderID,
			payableStatuses,
		).
		Updates(map[string]interface{}{
			"status":            model.OrderStatusPaid,
			"pg_transaction_id": payment.TransactionID,
			"pg_response_code":  payment.ResponseCode,
			"pg_raw_response":   []byte(payment.RawResponse),
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkFailed moves a gateway order still awaiting its callback to failed.
func (r *orderRepoImpl) MarkFailed(ctx context.Context, tx *gorm.DB, pgOrderID string, raw json.RawMessage) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("pg_order_id = ? AND status = ?", pgOrderID, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":          model.OrderStatusFailed,
			"pg_raw_response": []byte(raw),
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
