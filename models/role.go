package models

import "time"

// ReservedRoleID is the seeded super role. It can never be attached to or
// detached from a user through role assignment.
const ReservedRoleID uint = 1

type Role struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"uniqueIndex;not null" json:"title"`
	Description string       `json:"description"`
	IsSuper     bool         `gorm:"not null;default:false" json:"-"`
	Permissions []Permission `gorm:"many2many:permission_role;constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
	Users       []User       `gorm:"many2many:role_user;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Permission grants one admin endpoint template (Path) for one lower-cased
// HTTP verb (Method).
type Permission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Path        string    `gorm:"not null;uniqueIndex:idx_permission_route" json:"path"`
	Method      string    `gorm:"not null;size:10;uniqueIndex:idx_permission_route" json:"method"`
	Arrange     int       `json:"arrange"`
	Roles       []Role    `gorm:"many2many:permission_role" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
