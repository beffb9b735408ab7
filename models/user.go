package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserName     string     `json:"user_name"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `gorm:"uniqueIndex;not null" json:"phone"`
	NationalCode *string    `gorm:"uniqueIndex" json:"national_code"`
	Email        *string    `gorm:"uniqueIndex" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	BirthDate    *time.Time `json:"birth_date"`
	Gender       *int       `json:"gender"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	Roles        []Role     `gorm:"many2many:role_user;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
	Carts        []Cart     `gorm:"foreignKey:UserID" json:"carts,omitempty"`
	Orders       []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName is the "first last" form denormalized onto orders.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
