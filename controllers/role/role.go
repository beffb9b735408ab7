package roleControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

type CreateRoleRequest struct {
	Title         string `json:"title" binding:"required,max=100,text"`
	Description   string `json:"description" binding:"omitempty,max=500"`
	PermissionsID []uint `json:"permissions_id"`
}

// GET /api/admin/roles
// Super roles are never listed.
func GetRoles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var roles []models.Role
		if err := db.WithContext(c.Request.Context()).
			Preload("Permissions").
			Where("is_super = ?", false).
			Order("id").
			Find(&roles).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, roles, "")
	}
}

// POST /api/admin/roles
func CreateRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())

		missing, err := controllers.MissingIDs(db, &models.Permission{}, req.PermissionsID)
		if err != nil {
			response.Error(c, err)
			return
		}
		verr := models.NewValidationError()
		for i, id := range req.PermissionsID {
			if missing[id] {
				verr.Add(fmt.Sprintf("permissions_id.%d", i), "is invalid")
			}
		}
		if err := verr.Err(); err != nil {
			response.Error(c, err)
			return
		}

		role := models.Role{Title: req.Title, Description: req.Description}
		if len(req.PermissionsID) > 0 {
			if err := db.Where("id IN ?", req.PermissionsID).Find(&role.Permissions).Error; err != nil {
				response.Error(c, err)
				return
			}
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Omit("Permissions.*").Create(&role).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = models.Invalid("title", "has already been taken")
		}
		if err != nil {
			response.Error(c, err)
			return
		}

		var created models.Role
		if err := db.Preload("Permissions").First(&created, role.ID).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, created, "Role created successfully")
	}
}

// GET /api/admin/permissions
func GetPermissions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var perms []models.Permission
		if err := db.WithContext(c.Request.Context()).
			Order("category").Order("arrange").Order("id").
			Find(&perms).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, perms, fmt.Sprintf("%d permissions found", len(perms)))
	}
}
