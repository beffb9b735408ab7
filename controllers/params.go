// Package controllers holds request helpers shared by the admin handler
// packages.
package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/models"
	"gorm.io/gorm"
)

// ParamID parses a numeric path parameter. A malformed id cannot name an
// existing row, so it is reported as not found.
func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s %q: %w", name, c.Param(name), models.ErrNotFound)
	}
	return uint(id), nil
}

// PageOf reads ?page=&count=.
func PageOf(c *gin.Context) models.Page {
	return models.ParsePage(c.Query("page"), c.Query("count"))
}

// Search reads ?searchChar=.
func Search(c *gin.Context) string {
	return c.Query("searchChar")
}

// MissingIDs returns the ids in ids that have no row in model's table.
// Soft deleted rows count as missing.
func MissingIDs(db *gorm.DB, model any, ids []uint) (map[uint]bool, error) {
	missing := make(map[uint]bool)
	if len(ids) == 0 {
		return missing, nil
	}
	var found []uint
	if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			missing[id] = true
		}
	}
	return missing, nil
}
