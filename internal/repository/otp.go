package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrOTPNotFound = errors.New("otp not found")

// OTPStore keeps one pending one-time code per phone number. Entries expire
// on their own so every server instance sees the same state.
type OTPStore interface {
	Set(ctx context.Context, phone, hashedOTP string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

type redisOTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{
		client: client,
	}
}

func (s *redisOTPStore) Set(ctx context.Context, phone, hashedOTP string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(phone), hashedOTP, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisOTPStore) Get(ctx context.Context, phone string) (string, error) {
	hashed, err := s.client.Get(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return hashed, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, otpKey(phone)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func otpKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}
