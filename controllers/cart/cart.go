package cartControllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/pricing"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

// Selection is one requested cart line.
type Selection struct {
	ProductID   uint  `json:"product_id" binding:"required"`
	ColorID     *uint `json:"color_id"`
	GuaranteeID *uint `json:"guarantee_id"`
	Count       int   `json:"count" binding:"required,min=1,max=100000"`
}

type CreateCartRequest struct {
	UserID   uint        `json:"user_id" binding:"required"`
	Products []Selection `json:"products" binding:"required,min=1,dive"`
}

// -------- Core Logic --------

// CreateCart stores a cart owned by userID with one item per selection. The
// cart and its items are written in one transaction.
func CreateCart(ctx context.Context, db *gorm.DB, userID uint, selections []Selection) (*models.Cart, error) {
	db = db.WithContext(ctx)
	if err := validateSelections(db, userID, selections); err != nil {
		return nil, err
	}

	cart := models.Cart{UserID: &userID}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cart).Error; err != nil {
			return fmt.Errorf("create cart: %w", err)
		}
		items := make([]models.Item, len(selections))
		for i, s := range selections {
			items[i] = models.Item{
				CartID:      cart.ID,
				ProductID:   s.ProductID,
				ColorID:     s.ColorID,
				GuaranteeID: s.GuaranteeID,
				Count:       s.Count,
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create cart items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out models.Cart
	if err := db.Preload("Items").First(&out, cart.ID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func validateSelections(db *gorm.DB, userID uint, selections []Selection) error {
	verr := models.NewValidationError()

	missingUser, err := controllers.MissingIDs(db, &models.User{}, []uint{userID})
	if err != nil {
		return err
	}
	if missingUser[userID] {
		verr.Add("user_id", "is invalid")
	}

	var productIDs, colorIDs, guaranteeIDs []uint
	for _, s := range selections {
		productIDs = append(productIDs, s.ProductID)
		if s.ColorID != nil {
			colorIDs = append(colorIDs, *s.ColorID)
		}
		if s.GuaranteeID != nil {
			guaranteeIDs = append(guaranteeIDs, *s.GuaranteeID)
		}
	}
	missingProducts, err := controllers.MissingIDs(db, &models.Product{}, productIDs)
	if err != nil {
		return err
	}
	missingColors, err := controllers.MissingIDs(db, &models.Color{}, colorIDs)
	if err != nil {
		return err
	}
	missingGuarantees, err := controllers.MissingIDs(db, &models.Guarantee{}, guaranteeIDs)
	if err != nil {
		return err
	}

	for i, s := range selections {
		if missingProducts[s.ProductID] {
			verr.Add(fmt.Sprintf("products.%d.product_id", i), "is invalid")
		}
		if s.ColorID != nil && missingColors[*s.ColorID] {
			verr.Add(fmt.Sprintf("products.%d.color_id", i), "is invalid")
		}
		if s.GuaranteeID != nil && missingGuarantees[*s.GuaranteeID] {
			verr.Add(fmt.Sprintf("products.%d.guarantee_id", i), "is invalid")
		}
		if s.Count <= 0 {
			verr.Add(fmt.Sprintf("products.%d.count", i), "must be at least 1")
		} else if s.Count > pricing.MaxCount {
			verr.Add(fmt.Sprintf("products.%d.count", i), fmt.Sprintf("must be at most %d", pricing.MaxCount))
		}
	}
	return verr.Err()
}

// DeleteCart soft deletes a cart that has not been ordered.
func DeleteCart(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, id).Error; err != nil {
			return err
		}
		if cart.IsOrdered {
			return models.Invalid("cart", "has already been ordered")
		}
		return tx.Delete(&cart).Error
	})
}

// -------- Handlers --------

// GET /api/admin/carts
func GetCarts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := controllers.PageOf(c)
		search := controllers.Search(c)
		query := func() *gorm.DB {
			return db.WithContext(c.Request.Context()).Model(&models.Cart{}).
				Scopes(models.OwnerPhoneLike(search))
		}

		var total int64
		if err := query().Count(&total).Error; err != nil {
			response.Error(c, err)
			return
		}
		var carts []models.Cart
		if err := query().Scopes(models.Paginate(page)).
			Preload("User").
			Preload("Items").
			Order("id DESC").
			Find(&carts).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.List(c, carts, total, page, "")
	}
}

// POST /api/admin/carts
func CreateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		cart, err := CreateCart(c.Request.Context(), db, req.UserID, req.Products)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, cart, "Cart created successfully")
	}
}

// GET /api/admin/carts/:id
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var cart models.Cart
		if err := db.WithContext(c.Request.Context()).
			Preload("User").
			Preload("Items.Product").
			Preload("Items.Color").
			Preload("Items.Guarantee").
			First(&cart, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, cart, "")
	}
}

// DELETE /api/admin/carts/:id
func DeleteCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := DeleteCart(c.Request.Context(), db, id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, http.StatusOK, "Cart deleted successfully")
	}
}
