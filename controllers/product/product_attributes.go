package productcontroller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

// AttributeValue elements are checked by hand: gin reports failures inside a
// bound slice without their index.
type AttributeValue struct {
	AttributeID uint   `json:"attribute_id"`
	Value       string `json:"value"`
}

func productAttributes(db *gorm.DB, productID uint) ([]models.ProductAttribute, error) {
	var attrs []models.ProductAttribute
	err := db.Preload("Attribute").Where("product_id = ?", productID).Order("attribute_id").Find(&attrs).Error
	return attrs, err
}

// GET /api/admin/products/:id/attributes
func GetProductAttributes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		db := db.WithContext(c.Request.Context())
		if err := db.Select("id").First(&models.Product{}, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		attrs, err := productAttributes(db, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, attrs, "")
	}
}

// SyncProductAttributes replaces every attribute value of a product with the
// posted list.
// POST /api/admin/products/:id/attributes
func SyncProductAttributes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var values []AttributeValue
		if err := c.ShouldBindJSON(&values); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		verr := models.NewValidationError()
		seen := make(map[uint]bool, len(values))
		ids := make([]uint, 0, len(values))
		for i, v := range values {
			if v.AttributeID == 0 {
				verr.Add(fmt.Sprintf("%d.attribute_id", i), "is required")
			}
			switch {
			case v.Value == "":
				verr.Add(fmt.Sprintf("%d.value", i), "is required")
			case len(v.Value) > 255 || !validation.IsText(v.Value):
				verr.Add(fmt.Sprintf("%d.value", i), "contains invalid characters")
			}
			if seen[v.AttributeID] {
				verr.Add(fmt.Sprintf("%d.attribute_id", i), "is duplicated")
			}
			seen[v.AttributeID] = true
			ids = append(ids, v.AttributeID)
		}
		db := db.WithContext(c.Request.Context())
		if err := db.Select("id").First(&models.Product{}, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		missing, err := controllers.MissingIDs(db, &models.Attribute{}, ids)
		if err != nil {
			response.Error(c, err)
			return
		}
		for i, v := range values {
			if v.AttributeID != 0 && missing[v.AttributeID] {
				verr.Add(fmt.Sprintf("%d.attribute_id", i), "is invalid")
			}
		}
		if err := verr.Err(); err != nil {
			response.Error(c, err)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductAttribute{}).Error; err != nil {
				return err
			}
			if len(values) == 0 {
				return nil
			}
			rows := make([]models.ProductAttribute, len(values))
			for i, v := range values {
				rows[i] = models.ProductAttribute{ProductID: id, AttributeID: v.AttributeID, Value: v.Value}
			}
			return tx.Omit("Attribute").Create(&rows).Error
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		attrs, err := productAttributes(db, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, attrs, "Attributes saved successfully")
	}
}
