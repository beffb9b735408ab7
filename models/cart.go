package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart becomes read-only once IsOrdered is set by order finalization.
type Cart struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	User      *User          `json:"user,omitempty"`
	IsOrdered bool           `gorm:"not null;default:false" json:"is_ordered"`
	Items     []Item         `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Item is one cart line. UnitPrice stays nil until the owning cart is
// ordered and is never rewritten after that.
type Item struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CartID      uint       `gorm:"index;not null" json:"cart_id"`
	ProductID   uint       `gorm:"index;not null" json:"product_id"`
	Product     *Product   `json:"product,omitempty"`
	ColorID     *uint      `gorm:"index" json:"color_id"`
	Color       *Color     `json:"color,omitempty"`
	GuaranteeID *uint      `gorm:"index" json:"guarantee_id"`
	Guarantee   *Guarantee `json:"guarantee,omitempty"`
	Count       int        `gorm:"not null" json:"count"`
	UnitPrice   *int64     `json:"unit_price"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
