package service

import (
	"context"
	"saree-checkout/internal/client"
	"saree-checkout/internal/config"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testUserID = "user-1"
	testSalt   = "test-salt"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := client.InitDatabase("sqlite", dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedCart stores product P1 (mrp 1000, 10% off) and a cart holding two
// of them for userID.
func seedCart(t *testing.T, db *gorm.DB, userID string) {
	product := &model.Product{
		ID:              "p1",
		Name:            "Banarasi Silk",
		MRP:             float64Ptr(1000),
		DiscountPercent: float64Ptr(10),
	}
	require.NoError(t, db.Create(product).Error)

	cart := &model.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Items:  []model.CartItem{{ProductID: "p1", Quantity: 2}},
	}
	require.NoError(t, db.Create(cart).Error)
}

func seedAddress(t *testing.T, db *gorm.DB, userID string) {
	require.NoError(t, db.Create(&model.Address{
		ID:           uuid.NewString(),
		UserID:       userID,
		FullName:     "Asha Patil",
		MobileNumber: "9876543210",
		Pincode:      "411038",
		Address:      "12 Law College Road",
		City:         "Pune",
		State:        "MH",
		AddressType:  "home",
	}).Error)
}

func cartItemCount(t *testing.T, db *gorm.DB, userID string) int64 {
	var count int64
	require.NoError(t, db.Model(&model.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Count(&count).Error)
	return count
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	return count
}

type testEnv struct {
	db       *gorm.DB
	cartRepo *countingCartRepo
	orders   OrderService
	razorpay *mockRazorpayClient
	gateway  *mockGatewayClient
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	cartRepo := &countingCartRepo{CartRepository: repository.NewCartRepository(db)}
	snapshotter := NewSnapshotter(cartRepo, repository.NewAddressRepository(db))

	return &testEnv{
		db:       db,
		cartRepo: cartRepo,
		orders:   NewOrderService(db, snapshotter, repository.NewOrderRepository(db), cartRepo),
		razorpay: &mockRazorpayClient{keyID: "rzp_test_key", keySecret: "s"},
		gateway: &mockGatewayClient{
			configured:  true,
			redirectURL: "https://pg.example.com/pay/abc",
			status:      &client.GatewayStatus{ResponseCode: "200", TransactionID: "TXN-STATUS"},
		},
	}
}

func (e *testEnv) razorpayService() RazorpayService {
	return NewRazorpayService(e.razorpay, repository.NewOrderRepository(e.db), e.orders)
}

func (e *testEnv) gatewayService() GatewayService {
	cfg := &config.Gateway{
		Salt:        testSalt,
		Mode:        "TEST",
		DefaultCity: "Pune",
		DefaultZip:  "411001",
	}
	return NewGatewayService(e.gateway, e.orders, cfg, "https://api.example.com")
}

func (e *testEnv) reload(t *testing.T, orderID string) *model.Order {
	order, err := repository.NewOrderRepository(e.db).FindByID(context.Background(), orderID)
	require.NoError(t, err)
	return order
}
