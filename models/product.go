package models

import (
	"time"

	"gorm.io/gorm"
)

// Product prices are integers in the minor currency unit.
type Product struct {
	ID                uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	Title             string             `gorm:"not null;index" json:"title"`
	Price             int64              `gorm:"not null" json:"price"`
	Weight            *float64           `json:"weight"`
	BrandID           *uint              `gorm:"index" json:"brand_id"`
	Brand             *Brand             `json:"brand,omitempty"`
	Descriptions      string             `json:"descriptions"`
	ShortDescriptions string             `json:"short_descriptions"`
	CartDescriptions  string             `json:"cart_descriptions"`
	Image             string             `json:"image"`
	AltImage          string             `json:"alt_image"`
	Keywords          string             `json:"keywords"`
	Stock             *int               `json:"stock"`
	Discount          *int               `json:"discount"`
	IsActive          bool               `gorm:"not null" json:"is_active"`
	Categories        []Category         `gorm:"many2many:category_product;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Colors            []Color            `gorm:"many2many:color_product;constraint:OnDelete:CASCADE" json:"colors,omitempty"`
	Guarantees        []Guarantee        `gorm:"many2many:guarantee_product;constraint:OnDelete:CASCADE" json:"guarantees,omitempty"`
	Attributes        []ProductAttribute `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
	Gallery           []Gallery          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"gallery,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`
}

type Gallery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Image     string    `gorm:"not null" json:"image"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductAttribute is the product <-> attribute pivot carrying the value.
type ProductAttribute struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"uniqueIndex:idx_product_attribute;not null" json:"product_id"`
	AttributeID uint      `gorm:"uniqueIndex:idx_product_attribute;not null" json:"attribute_id"`
	Attribute   Attribute `json:"attribute"`
	Value       string    `gorm:"not null" json:"value"`
}

func (ProductAttribute) TableName() string {
	return "attribute_product"
}
