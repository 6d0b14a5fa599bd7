package service

import (
	"context"
	"errors"
	"fmt"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// CartSnapshot is a priced copy of a cart taken at one instant.
type CartSnapshot struct {
	Items  []model.OrderItem
	Amount int64
}

// Snapshotter copies the mutable checkout inputs (cart, saved address) into
// values an order can own.
type Snapshotter struct {
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
}

func NewSnapshotter(cartRepo repository.CartRepository, addressRepo repository.AddressRepository) *Snapshotter {
	return &Snapshotter{
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
	}
}

// SnapshotCart prices every cart entry. A missing or empty cart is
// ErrEmptyCart.
func (s *Snapshotter) SnapshotCart(ctx context.Context, userID string) (*CartSnapshot, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	snapshot := &CartSnapshot{
		Items: make([]model.OrderItem, len(cart.Items)),
	}
	for i, item := range cart.Items {
		price := UnitPrice(item.Product)
		snapshot.Items[i] = model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		}
		snapshot.Amount += price * int64(item.Quantity)
	}

	return snapshot, nil
}

// SnapshotAddress copies the user's saved address, or returns nil when
// there is none. A failed lookup is logged and treated as no address.
func (s *Snapshotter) SnapshotAddress(ctx context.Context, userID string) *model.ShippingAddress {
	addr, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("address lookup failed for user %s: %v", userID, err)
		}
		return nil
	}

	return &model.ShippingAddress{
		FullName:       addr.FullName,
		MobileNumber:   addr.MobileNumber,
		Pincode:        addr.Pincode,
		Locality:       addr.Locality,
		Address:        addr.Address,
		City:           addr.City,
		State:          addr.State,
		Landmark:       addr.Landmark,
		AlternatePhone: addr.AlternatePhone,
		AddressType:    addr.AddressType,
	}
}
