package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/events"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/pricing"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------
type CreateOrderRequest struct {
	CartID        uint   `json:"cart_id" binding:"required"`
	DeliveryID    uint   `json:"delivery_id" binding:"required"`
	DiscountID    *uint  `json:"discount_id"`
	Address       string `json:"address" binding:"required,max=1000"`
	PostalCode    string `json:"postal_code" binding:"omitempty,digits,max=20"`
	Phone         string `json:"phone" binding:"required,digits,len=11"`
	Email         string `json:"email" binding:"omitempty,email"`
	PayCardNumber string `json:"pay_card_number" binding:"required,digits,len=16"`
	PayBank       string `json:"pay_bank" binding:"omitempty,max=100"`
}

// -------- Helpers --------

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// CreateOrder turns a cart that has not been ordered into an order priced at
// the current product prices. The order insert, the cart flag and the frozen
// item prices are written in one transaction.
func CreateOrder(ctx context.Context, db *gorm.DB, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		verr := models.NewValidationError()

		var cart models.Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cart, req.CartID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			verr.Add("cart_id", "is invalid")
		case err != nil:
			return fmt.Errorf("load cart %d: %w", req.CartID, err)
		case cart.IsOrdered:
			verr.Add("cart_id", "has already been ordered")
		case cart.UserID == nil:
			verr.Add("cart_id", "has no owner")
		}

		var delivery models.Delivery
		if err := tx.First(&delivery, req.DeliveryID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load delivery %d: %w", req.DeliveryID, err)
			}
			verr.Add("delivery_id", "is invalid")
		}

		var percent *int
		if req.DiscountID != nil {
			var discount models.Discount
			if err := tx.First(&discount, *req.DiscountID).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("load discount %d: %w", *req.DiscountID, err)
				}
				verr.Add("discount_id", "is invalid")
			} else {
				percent = &discount.Percent
			}
		}
		if err := verr.Err(); err != nil {
			return err
		}

		var owner models.User
		if err := tx.Unscoped().First(&owner, *cart.UserID).Error; err != nil {
			return fmt.Errorf("load cart owner %d: %w", *cart.UserID, err)
		}

		var items []models.Item
		if err := tx.Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
			Where("cart_id = ?", cart.ID).
			Order("id").
			Find(&items).Error; err != nil {
			return fmt.Errorf("load cart items: %w", err)
		}
		lines := make([]pricing.Line, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				return fmt.Errorf("item %d: product %d is missing", item.ID, item.ProductID)
			}
			lines = append(lines, pricing.Line{ItemID: item.ID, UnitPrice: item.Product.Price, Count: item.Count})
		}
		totals, err := pricing.ComputeTotals(lines, percent)
		if errors.Is(err, pricing.ErrAmountOutOfRange) {
			return models.Invalid("cart_id", "total is out of range")
		}
		if err != nil {
			return err
		}

		order = models.Order{
			Reference:     generateOrderRef(),
			UserID:        owner.ID,
			CartID:        cart.ID,
			DiscountID:    req.DiscountID,
			DeliveryID:    req.DeliveryID,
			UserFullname:  owner.FullName(),
			Amount:        totals.Amount,
			DiscountPrice: totals.DiscountPrice,
			PayAmount:     totals.PayAmount,
			Address:       req.Address,
			PostalCode:    req.PostalCode,
			Phone:         req.Phone,
			Email:         req.Email,
			PayCardNumber: req.PayCardNumber,
			PayBank:       req.PayBank,
		}
		if err := tx.Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.Invalid("cart_id", "has already been ordered")
			}
			return fmt.Errorf("create order: %w", err)
		}

		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("is_ordered", true).Error; err != nil {
			return fmt.Errorf("mark cart %d ordered: %w", cart.ID, err)
		}

		for _, fp := range pricing.Freeze(lines) {
			if err := tx.Model(&models.Item{}).
				Where("id = ? AND unit_price IS NULL", fp.ItemID).
				Update("unit_price", fp.UnitPrice).Error; err != nil {
				return fmt.Errorf("freeze item %d: %w", fp.ItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Delivery").
		Preload("Discount").
		Preload("Cart.Items.Product").
		Preload("Cart.Items.Color").
		Preload("Cart.Items.Guarantee")
}

// -------- Handlers --------

// GET /api/admin/orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := controllers.PageOf(c)
		search := controllers.Search(c)
		query := func() *gorm.DB {
			return db.WithContext(c.Request.Context()).Model(&models.Order{}).
				Scopes(models.OwnerPhoneLike(search))
		}

		var total int64
		if err := query().Count(&total).Error; err != nil {
			response.Error(c, err)
			return
		}
		var orders []models.Order
		if err := query().Scopes(models.Paginate(page)).
			Preload("User").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.List(c, orders, total, page, "")
	}
}

// POST /api/admin/orders
func CreateOrderHandler(db *gorm.DB, publisher events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		created, err := CreateOrder(c.Request.Context(), db, req)
		if err != nil {
			response.Error(c, err)
			return
		}

		var order models.Order
		if err := withDetails(db.WithContext(c.Request.Context())).First(&order, created.ID).Error; err != nil {
			response.Error(c, err)
			return
		}
		if err := publisher.OrderCreated(c.Request.Context(), order); err != nil {
			log.Printf("⚠️ publish order %s: %v", order.Reference, err)
		}
		log.Printf("✅ order %s created for cart %d", order.Reference, order.CartID)
		response.Data(c, http.StatusCreated, order, "Order created successfully")
	}
}

// GET /api/admin/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var order models.Order
		if err := withDetails(db.WithContext(c.Request.Context())).First(&order, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, order, "")
	}
}

// DELETE /api/admin/orders/:id
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		result := db.WithContext(c.Request.Context()).Delete(&models.Order{}, id)
		if result.Error != nil {
			response.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			response.Error(c, models.ErrNotFound)
			return
		}
		response.Message(c, http.StatusOK, "Order deleted successfully")
	}
}
