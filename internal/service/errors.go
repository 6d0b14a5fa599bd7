package service

import "errors"

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrMissingFields          = errors.New("missing required fields")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingShippingAddress = errors.New("shipping address is required for COD orders, please save your delivery address first")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrHashMismatch           = errors.New("hash mismatch")
	ErrProviderCommunication  = errors.New("payment provider unreachable")
	ErrPaymentNotConfirmed    = errors.New("payment not confirmed by provider")
	ErrOrderNotFound          = errors.New("order not found")
	ErrDuplicateOrder         = errors.New("order already exists for this payment")
	ErrServerConfig           = errors.New("server configuration error")
	ErrInvalidPhone           = errors.New("invalid phone number, must be 10 digits starting with 6-9")
	ErrInvalidOTP             = errors.New("invalid otp")
	ErrOTPExpired             = errors.New("otp not found or expired, please request a new otp")
)
