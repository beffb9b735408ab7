package userControllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/auth"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	UserName     string  `json:"user_name" binding:"required,max=100,printascii"`
	FirstName    string  `json:"first_name" binding:"omitempty,max=100,text"`
	LastName     string  `json:"last_name" binding:"omitempty,max=100,text"`
	Phone        string  `json:"phone" binding:"required,digits,len=11"`
	NationalCode *string `json:"national_code" binding:"omitempty,digits,len=10"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     string  `json:"password" binding:"required,min=8,max=20,printascii"`
	BirthDate    string  `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Gender       *int    `json:"gender" binding:"omitempty,oneof=0 1"`
	RolesID      []uint  `json:"roles_id" binding:"required,min=1"`
}

type RolesRequest struct {
	RolesID []uint `json:"roles_id" binding:"required,min=1"`
}

// -------- Core Logic --------

// checkRoles loads the roles named by ids. The reserved super role is never
// assignable, so naming it fails like an unknown id.
func checkRoles(db *gorm.DB, ids []uint) ([]models.Role, error) {
	missing, err := controllers.MissingIDs(db, &models.Role{}, ids)
	if err != nil {
		return nil, err
	}
	verr := models.NewValidationError()
	for i, id := range ids {
		if id == models.ReservedRoleID || missing[id] {
			verr.Add(fmt.Sprintf("roles_id.%d", i), "is invalid")
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	var roles []models.Role
	if err := db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func checkUnique(db *gorm.DB, req CreateUserRequest) error {
	verr := models.NewValidationError()
	checks := []struct {
		field, column string
		value         *string
	}{
		{"phone", "phone", &req.Phone},
		{"national_code", "national_code", req.NationalCode},
		{"email", "email", req.Email},
	}
	for _, chk := range checks {
		if chk.value == nil || *chk.value == "" {
			continue
		}
		var n int64
		if err := db.Unscoped().Model(&models.User{}).Where(chk.column+" = ?", *chk.value).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			verr.Add(chk.field, "has already been taken")
		}
	}
	return verr.Err()
}

// CreateUser stores an active user holding the given roles.
func CreateUser(ctx context.Context, db *gorm.DB, req CreateUserRequest) (*models.User, error) {
	db = db.WithContext(ctx)
	if err := checkUnique(db, req); err != nil {
		return nil, err
	}
	roles, err := checkRoles(db, req.RolesID)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		UserName:     req.UserName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		NationalCode: req.NationalCode,
		Email:        req.Email,
		Password:     hash,
		Gender:       req.Gender,
		IsActive:     true,
		Roles:        roles,
	}
	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, models.Invalid("birth_date", "is not a valid date")
		}
		user.BirthDate = &birth
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Roles.*").Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return loadUser(db, user.ID)
}

// AttachRoles adds roles to a user. Roles the user already holds are kept.
func AttachRoles(ctx context.Context, db *gorm.DB, userID uint, roleIDs []uint) (*models.User, error) {
	return changeRoles(ctx, db, userID, roleIDs, func(a *gorm.Association, roles []models.Role) error {
		return a.Append(roles)
	})
}

// DetachRoles removes roles from a user.
func DetachRoles(ctx context.Context, db *gorm.DB, userID uint, roleIDs []uint) (*models.User, error) {
	return changeRoles(ctx, db, userID, roleIDs, func(a *gorm.Association, roles []models.Role) error {
		return a.Delete(roles)
	})
}

func changeRoles(ctx context.Context, db *gorm.DB, userID uint, roleIDs []uint, change func(*gorm.Association, []models.Role) error) (*models.User, error) {
	db = db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	roles, err := checkRoles(db, roleIDs)
	if err != nil {
		return nil, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return change(tx.Model(&user).Association("Roles"), roles)
	})
	if err != nil {
		return nil, err
	}
	return loadUser(db, userID)
}

func loadUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.Preload("Roles.Permissions").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// -------- Handlers --------

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := controllers.PageOf(c)
		search := controllers.Search(c)
		query := func() *gorm.DB {
			q := db.WithContext(c.Request.Context()).Model(&models.User{})
			if search != "" {
				like := "%" + search + "%"
				q = q.Where("phone LIKE ? OR email LIKE ?", like, like)
			}
			return q
		}

		var total int64
		if err := query().Count(&total).Error; err != nil {
			response.Error(c, err)
			return
		}
		var users []models.User
		if err := query().
			Scopes(models.Paginate(page)).
			Preload("Roles").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.List(c, users, total, page, "")
	}
}

// POST /api/admin/users
func CreateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		user, err := CreateUser(c.Request.Context(), db, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, user, "User created successfully")
	}
}

// GET /api/admin/users/:id
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		user, err := loadUser(db.WithContext(c.Request.Context()), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, user, "")
	}
}

// POST /api/admin/users/:id/roles
func AttachRolesHandler(db *gorm.DB) gin.HandlerFunc {
	return rolesHandler(db, AttachRoles, "Roles attached successfully")
}

// DELETE /api/admin/users/:id/roles
func DetachRolesHandler(db *gorm.DB) gin.HandlerFunc {
	return rolesHandler(db, DetachRoles, "Roles detached successfully")
}

func rolesHandler(db *gorm.DB, change func(context.Context, *gorm.DB, uint, []uint) (*models.User, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var req RolesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		user, err := change(c.Request.Context(), db, id, req.RolesID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, user, message)
	}
}
