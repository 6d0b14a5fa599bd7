package model

import "time"

// Product is read-only to checkout. Either Price is set, or the effective
// price is derived from MRP and DiscountPercent.
type Product struct {
	ID              string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name            string    `gorm:"size:255" json:"name"`
	Price           *int64    `json:"price,omitempty"`
	MRP             *float64  `json:"mrp,omitempty"`
	DiscountPercent *float64  `json:"discountPercent,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Cart struct {
	ID        string     `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID    string     `gorm:"size:64;uniqueIndex;not null" json:"user"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// FK → cart.id
	CartID string `gorm:"size:64;index;not null" json:"-"`
	// FK → product.id
	ProductID string    `gorm:"size:64;index;not null" json:"product"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int32     `gorm:"not null" json:"quantity"` // >= 1
	CreatedAt time.Time `json:"-"`
}

// Address is the user's current saved delivery address. One per user.
type Address struct {
	ID             string `gorm:"primaryKey;size:64;not null"`
	UserID         string `gorm:"size:64;uniqueIndex;not null"`
	FullName       string `gorm:"size:128"`
	MobileNumber   string `gorm:"size:16"`
	Pincode        string `gorm:"size:16"`
	Locality       string `gorm:"size:128"`
	Address        string `gorm:"size:512"`
	City           string `gorm:"size:64"`
	State          string `gorm:"size:64"`
	Landmark       string `gorm:"size:128"`
	AlternatePhone string `gorm:"size:16"`
	AddressType    string `gorm:"size:16"` // home, work
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type User struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Phone     *string   `gorm:"size:16;uniqueIndex" json:"phone,omitempty"`
	Email     *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Provider  string    `gorm:"size:16;not null;default:local" json:"-"` // local, google, otp
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
