package models

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate creates or updates every table of the admin backend.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Permission{},
		&Role{},
		&User{},
		&Brand{},
		&Category{},
		&Attribute{},
		&Color{},
		&Guarantee{},
		&Product{},
		&ProductAttribute{},
		&Gallery{},
		&Delivery{},
		&Discount{},
		&Cart{},
		&Item{},
		&Order{},
	)
}

// SeedSuperRole makes sure the reserved super role exists with id
// ReservedRoleID.
func SeedSuperRole(db *gorm.DB) error {
	role := Role{ID: ReservedRoleID, Title: "admin", Description: "unrestricted access", IsSuper: true}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{"is_super": true}),
	}).Create(&role).Error
	if err != nil {
		return fmt.Errorf("seed super role: %w", err)
	}
	// explicit ids do not advance postgres sequences
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`SELECT setval(pg_get_serial_sequence('roles', 'id'), (SELECT MAX(id) FROM roles))`).Error; err != nil {
			return fmt.Errorf("seed super role: reset sequence: %w", err)
		}
	}
	return nil
}

// SyncPermissions inserts a permission row for every (path, method) pair
// not stored yet. Existing rows keep their titles.
func SyncPermissions(db *gorm.DB, perms []Permission) error {
	if len(perms) == 0 {
		return nil
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}, {Name: "method"}},
		DoNothing: true,
	}).Create(&perms).Error
	if err != nil {
		return fmt.Errorf("sync permissions: %w", err)
	}
	return nil
}
