package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the priced, append-only result of finalizing exactly one cart.
// PayAmount always equals Amount - DiscountPrice.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Reference     string          `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	User          *User           `json:"user,omitempty"`
	CartID        uint            `gorm:"uniqueIndex;not null" json:"cart_id"`
	Cart          *Cart           `json:"cart,omitempty"`
	DiscountID    *uint           `gorm:"index" json:"discount_id"`
	Discount      *Discount       `json:"discount,omitempty"`
	DeliveryID    uint            `gorm:"index;not null" json:"delivery_id"`
	Delivery      *Delivery       `json:"delivery,omitempty"`
	UserFullname  string          `gorm:"not null" json:"user_fullname"`
	Amount        int64           `gorm:"not null" json:"amount"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"discount_price"`
	PayAmount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"pay_amount"`
	Address       string          `gorm:"type:text;not null" json:"address"`
	PostalCode    string          `json:"postal_code"`
	Phone         string          `gorm:"not null" json:"phone"`
	Email         string          `json:"email"`
	PayCardNumber string          `json:"pay_card_number"`
	PayBank       string          `json:"pay_bank"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Discount applies Percent to an order. When ForAll is false it targets the
// listed Products.
type Discount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Percent   int       `gorm:"not null" json:"percent"`
	ExpireAt  time.Time `json:"expire_at"`
	ForAll    bool      `gorm:"not null" json:"for_all"`
	Products  []Product `gorm:"many2many:discount_product;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
