package repository

import (
	"context"
	"errors"
	"saree-checkout/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	// FindOrCreateByPhone returns the user owning phone, creating an otp
	// user on first login.
	FindOrCreateByPhone(ctx context.Context, phone string) (*model.User, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) FindOrCreateByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.User{
			ID:       uuid.NewString(),
			Name:     "User " + phone[len(phone)-4:],
			Phone:    &phone,
			Provider: "otp",
		}
		if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// lost a race with a concurrent first login
				return r.FindOrCreateByPhone(ctx, phone)
			}
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if user.Provider != "otp" {
		user.Provider = "otp"
		if err := r.db.WithContext(ctx).Model(&user).Update("provider", "otp").Error; err != nil {
			return nil, err
		}
	}

	return &user, nil
}
