package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string         `gorm:"uniqueIndex;not null" json:"title"`
	Descriptions string         `json:"descriptions"`
	Image        string         `json:"image"`
	ParentID     *uint          `gorm:"index" json:"parent_id"`
	Parent       *Category      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
	ShowInMenu   bool           `gorm:"not null" json:"show_in_menu"`
	Attributes   []Attribute    `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
	Products     []Product      `gorm:"many2many:category_product" json:"products,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Attribute is a category-scoped product property such as "RAM" in "GB".
type Attribute struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"index;not null" json:"category_id"`
	Title      string    `gorm:"not null" json:"title"`
	Unit       string    `json:"unit"`
	InFilter   bool      `json:"in_filter"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
