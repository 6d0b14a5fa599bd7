package repository

import (
	"context"
	"saree-checkout/internal/model"

	"gorm.io/gorm"
)

type AddressRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Address, error)
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) FindByUser(ctx context.Context, userID string) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&address).Error

	if err != nil {
		return nil, err
	}

	return &address, nil
}
