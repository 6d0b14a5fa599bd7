package model

import (
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created" // gateway order opened, awaiting callback
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPending   OrderStatus = "pending" // cash on delivery
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodGateway  PaymentMethod = "pg"
)

const DefaultCurrency = "INR"

type Order struct {
	ID            string        `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID        string        `gorm:"size:64;index;not null" json:"user"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Amount        int64         `gorm:"not null" json:"amount"` // sum of items price * quantity, fixed at creation
	Currency      string        `gorm:"size:8;not null;default:INR" json:"currency"`
	Status        OrderStatus   `gorm:"size:16;index;not null" json:"status"`
	PaymentMethod PaymentMethod `gorm:"size:16;not null" json:"paymentMethod"`

	RazorpayOrderID   *string `gorm:"size:64;uniqueIndex" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string `gorm:"size:64" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature *string `gorm:"size:128" json:"razorpaySignature,omitempty"`

	PgOrderID       *string         `gorm:"size:64;uniqueIndex" json:"pgOrderId,omitempty"`
	PgTransactionID *string         `gorm:"size:64" json:"pgTransactionId,omitempty"`
	PgResponseCode  *string         `gorm:"size:16" json:"pgResponseCode,omitempty"`
	PgRawResponse   json.RawMessage `gorm:"type:text" json:"pgRawResponse,omitempty"`

	ShippingAddress *ShippingAddress `gorm:"serializer:json;type:text" json:"shippingAddress"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// FK → order.id
	OrderID   string `gorm:"size:64;index;not null" json:"-"`
	ProductID string `gorm:"size:64;index;not null" json:"product"`
	Quantity  int32  `gorm:"not null" json:"quantity"`
	Price     int64  `gorm:"not null" json:"price"` // unit price at purchase
}

// ShippingAddress is copied from the user's Address when the order is
// created and keeps no link back to it.
type ShippingAddress struct {
	FullName       string `json:"fullName"`
	MobileNumber   string `json:"mobileNumber"`
	Pincode        string `json:"pincode"`
	Locality       string `json:"locality"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Landmark       string `json:"landmark"`
	AlternatePhone string `json:"alternatePhone"`
	AddressType    string `json:"addressType"`
}
