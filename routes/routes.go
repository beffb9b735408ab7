package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/access"
	"github.com/qasemB/Ecommerce-Api/auth"
	"github.com/qasemB/Ecommerce-Api/events"
	"github.com/qasemB/Ecommerce-Api/models"
	"gorm.io/gorm"
)

// AdminPrefix is where every permission guarded route is mounted.
const AdminPrefix = "/api/admin"

// Deps carries everything the handlers need.
type Deps struct {
	DB        *gorm.DB
	Tokens    *auth.Issuer
	Revoked   auth.RevocationStore
	Publisher events.Publisher
	Hub       *events.Hub
}

// SetupRoutes is the single entry point that wires up the auth and admin
// route groups, then stores one permission row per admin route.
func SetupRoutes(r *gin.Engine, deps Deps) (*access.Registry, error) {
	// 1️⃣ Public auth routes, user/logout need a token
	SetupAuthRoutes(r, deps)

	// 2️⃣ Admin routes (token + permission)
	registry := access.NewRegistry(AdminPrefix)
	SetupAdminRoutes(r, deps, registry)

	// 3️⃣ Permission rows for every registered route
	if err := models.SyncPermissions(deps.DB, PermissionsOf(registry.Entries())); err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}
	return registry, nil
}

// PermissionsOf turns registry entries into permission rows, arranged in
// registry order.
func PermissionsOf(entries []access.Entry) []models.Permission {
	perms := make([]models.Permission, 0, len(entries))
	for i, e := range entries {
		perms = append(perms, models.Permission{
			Title:    e.Title,
			Category: e.Category,
			Path:     e.Pattern,
			Method:   string(e.Verb),
			Arrange:  i + 1,
		})
	}
	return perms
}
