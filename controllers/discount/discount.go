package discountControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

type CreateDiscountRequest struct {
	Code       string `json:"code" binding:"required,max=50,alphanum"`
	Percent    int    `json:"percent" binding:"required,min=1,max=100"`
	ExpireAt   string `json:"expire_at" binding:"required,datetime=2006-01-02"`
	ForAll     *bool  `json:"for_all" binding:"required"`
	ProductIDs []uint `json:"product_ids"`
}

// CreateDiscount stores a discount code. A discount that is not for all
// products must name at least one existing product.
func CreateDiscount(ctx context.Context, db *gorm.DB, req CreateDiscountRequest) (*models.Discount, error) {
	db = db.WithContext(ctx)
	verr := models.NewValidationError()

	expireAt, err := time.Parse("2006-01-02", req.ExpireAt)
	if err != nil {
		verr.Add("expire_at", "is not a valid date")
	}
	if !*req.ForAll && len(req.ProductIDs) == 0 {
		verr.Add("product_ids", "is required when for_all is false")
	}
	missing, err := controllers.MissingIDs(db, &models.Product{}, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	for i, id := range req.ProductIDs {
		if missing[id] {
			verr.Add(fmt.Sprintf("product_ids.%d", i), "is invalid")
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	discount := models.Discount{
		Code:     req.Code,
		Percent:  req.Percent,
		ExpireAt: expireAt,
		ForAll:   *req.ForAll,
	}
	if !discount.ForAll {
		if err := db.Where("id IN ?", req.ProductIDs).Find(&discount.Products).Error; err != nil {
			return nil, err
		}
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Products.*").Create(&discount).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, models.Invalid("code", "has already been taken")
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

// GET /api/admin/discounts
func GetDiscounts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var discounts []models.Discount
		if err := db.WithContext(c.Request.Context()).Preload("Products").Order("id").Find(&discounts).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, discounts, "")
	}
}

// POST /api/admin/discounts
func CreateDiscountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		discount, err := CreateDiscount(c.Request.Context(), db, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, discount, "Discount created successfully")
	}
}

// GET /api/admin/discounts/:id
func GetDiscount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var discount models.Discount
		if err := db.WithContext(c.Request.Context()).Preload("Products").First(&discount, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, discount, "")
	}
}

// DELETE /api/admin/discounts/:id
// A discount used by an order cannot be deleted.
func DeleteDiscount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var discount models.Discount
			if err := tx.First(&discount, id).Error; err != nil {
				return err
			}
			var used int64
			if err := tx.Unscoped().Model(&models.Order{}).Where("discount_id = ?", id).Count(&used).Error; err != nil {
				return err
			}
			if used > 0 {
				return models.Invalid("discount", "is used by existing orders")
			}
			if err := tx.Model(&discount).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&discount).Error
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, http.StatusOK, "Discount deleted successfully")
	}
}
