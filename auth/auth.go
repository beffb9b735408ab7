// Package auth registers and logs in users, issues their bearer tokens and
// revokes them on logout.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	userKey   = "auth.user"
	claimsKey = "auth.claims"
)

// SetCurrent stores the authenticated user and token claims on the request.
func SetCurrent(c *gin.Context, user models.User, claims *Claims) {
	c.Set(userKey, user)
	c.Set(claimsKey, claims)
}

// CurrentUser returns the user stored by the token middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

func currentClaims(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

type RegisterRequest struct {
	Phone           string `json:"phone" binding:"required,len=11,digits"`
	Password        string `json:"password" binding:"required,min=6,max=12"`
	ConfirmPassword string `json:"c_password" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,len=11,digits"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// POST /api/auth/register
func Register(db *gorm.DB, tokens *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}

		var taken int64
		if err := db.Model(&models.User{}).Unscoped().Where("phone = ?", req.Phone).Count(&taken).Error; err != nil {
			response.Error(c, err)
			return
		}
		if taken > 0 {
			response.Error(c, models.Invalid("phone", "has already been taken"))
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			response.Error(c, err)
			return
		}
		user := models.User{Phone: req.Phone, Password: hash, IsActive: true}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, models.Invalid("phone", "has already been taken"))
				return
			}
			response.Error(c, err)
			return
		}

		token, _, err := tokens.Issue(user.ID, false)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":   token,
			"message": user.Phone + " registered successfully",
		})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, tokens *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}

		var user models.User
		err := db.Where("phone = ?", req.Phone).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, err)
			return
		}
		if err != nil || !user.IsActive ||
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "The provided credentials are incorrect"})
			return
		}

		token, exp, err := tokens.Issue(user.ID, req.Remember)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"token_type": "Bearer",
			"expires_at": exp.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/auth/logout
func Logout(revoked RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			response.Error(c, models.ErrUnauthorized)
			return
		}
		if err := revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, http.StatusOK, "Logged out successfully")
	}
}

// GET /api/auth/user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := CurrentUser(c)
		if !ok {
			response.Error(c, models.ErrUnauthorized)
			return
		}
		var user models.User
		if err := db.Preload("Roles.Permissions").First(&user, current.ID).Error; err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
