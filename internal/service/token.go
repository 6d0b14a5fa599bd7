package service

import (
	"fmt"
	"saree-checkout/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeOTPLogin = "otp_login"

type Claims struct {
	ID      string `json:"id"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager signs and checks the session tokens handed out at login.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(user *model.User) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrServerConfig
	}

	now := time.Now()
	claims := &Claims{
		ID:      user.ID,
		IsAdmin: user.IsAdmin,
		Type:    tokenTypeOTPLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	if user.Phone != nil {
		claims.Phone = *user.Phone
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Parse(token string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrServerConfig
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.ID == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
