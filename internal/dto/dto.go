package dto

import (
	"saree-checkout/internal/model"

	"github.com/shopspring/decimal"
)

type CreateRazorpayOrderRequest struct {
	Amount   decimal.Decimal   `json:"amount"` // rupees
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type VerifyRazorpayPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type OrderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

type CreatePaymentRequest struct {
	OrderID string `json:"orderId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type CreatePaymentResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// Older clients send the number as "mobile".
type SendOTPRequest struct {
	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`
}

func (r *SendOTPRequest) PhoneNumber() string {
	if r.Phone != "" {
		return r.Phone
	}
	return r.Mobile
}

type VerifyOTPRequest struct {
	SendOTPRequest
	OTP string `json:"otp"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
