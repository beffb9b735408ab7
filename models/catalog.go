package models

import (
	"time"

	"gorm.io/gorm"
)

type Brand struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OriginalName string         `gorm:"uniqueIndex;not null" json:"original_name"`
	PersianName  string         `json:"persian_name"`
	Descriptions string         `json:"descriptions"`
	Logo         string         `json:"logo"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Color struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Guarantee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Descriptions string    `json:"descriptions"`
	Length       *int      `json:"length"`
	LengthUnit   string    `json:"length_unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Delivery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Time      *int      `json:"time"`
	TimeUnit  string    `json:"time_unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
