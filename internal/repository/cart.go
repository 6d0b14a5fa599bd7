package repository

import (
	"context"
	"saree-checkout/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	// FindByUser loads the cart with its items and their products.
	FindByUser(ctx context.Context, userID string) (*model.Cart, error)
	// Clear empties the user's cart but keeps the cart itself.
	Clear(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) FindByUser(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	cartIDs := tx.Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)

	result := tx.WithContext(ctx).
		Where("cart_id IN (?)", cartIDs).
		Delete(&model.CartItem{})

	return result.RowsAffected, result.Error
}
