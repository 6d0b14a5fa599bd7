package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"saree-checkout/internal/client"
	"saree-checkout/internal/model"
	"saree-checkout/internal/repository"
	"time"

	"github.com/labstack/gommon/log"
)

var (
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

type AuthService interface {
	SendOTP(ctx context.Context, phone string) error
	// VerifyOTP consumes a pending code and returns the logged in user and
	// a signed session token.
	VerifyOTP(ctx context.Context, phone, otp string) (*model.User, string, error)
}

type authServiceImpl struct {
	otpStore  repository.OTPStore
	userRepo  repository.UserRepository
	smsClient client.SMSClient
	tokens    *TokenManager
	otpTTL    time.Duration
}

func NewAuthService(
	otpStore repository.OTPStore,
	userRepo repository.UserRepository,
	smsClient client.SMSClient,
	tokens *TokenManager,
	otpTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		otpStore:  otpStore,
		userRepo:  userRepo,
		smsClient: smsClient,
		tokens:    tokens,
		otpTTL:    otpTTL,
	}
}

func (s *authServiceImpl) SendOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	if !s.smsClient.Configured() {
		return ErrServerConfig
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := s.otpStore.Set(ctx, phone, hashOTP(code), s.otpTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.smsClient.Send(ctx, phone, "Your SaariSanskar OTP is "+code); err != nil {
		if delErr := s.otpStore.Delete(ctx, phone); delErr != nil {
			log.Warnf("drop unsent otp for %s: %v", maskPhone(phone), delErr)
		}
		return fmt.Errorf("%w: %v", ErrProviderCommunication, err)
	}

	log.Infof("otp sent to %s", maskPhone(phone))
	return nil
}

func (s *authServiceImpl) VerifyOTP(ctx context.Context, phone, otp string) (*model.User, string, error) {
	if phone == "" || otp == "" {
		return nil, "", ErrMissingFields
	}
	if !phonePattern.MatchString(phone) {
		return nil, "", ErrInvalidPhone
	}
	if !otpPattern.MatchString(otp) {
		return nil, "", ErrInvalidOTP
	}

	stored, err := s.otpStore.Get(ctx, phone)
	if errors.Is(err, repository.ErrOTPNotFound) {
		return nil, "", ErrOTPExpired
	}
	if err != nil {
		return nil, "", fmt.Errorf("get otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashOTP(otp))) != 1 {
		return nil, "", ErrInvalidOTP
	}

	if err := s.otpStore.Delete(ctx, phone); err != nil {
		return nil, "", fmt.Errorf("delete otp: %w", err)
	}

	user, err := s.userRepo.FindOrCreateByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("find or create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
