package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

// UpdateProduct replaces the fields of a product. Categories are always
// synced; colors and guarantees only when given.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Parse product ID
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var in ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())

		// 2️⃣ Fetch existing product
		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			response.Error(c, err)
			return
		}

		// 3️⃣ Check references
		rel, err := loadRelations(db, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		in.apply(&product)

		// 4️⃣ Save fields and associations together
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Categories", "Colors", "Guarantees", "Attributes", "Gallery").Save(&product).Error; err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Categories").Replace(rel.categories); err != nil {
				return err
			}
			if len(in.ColorIDs) > 0 {
				if err := tx.Model(&product).Association("Colors").Replace(rel.colors); err != nil {
					return err
				}
			}
			if len(in.GuaranteeIDs) > 0 {
				if err := tx.Model(&product).Association("Guarantees").Replace(rel.guarantees); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		var updated models.Product
		if err := withRelations(db).First(&updated, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, updated, "Product updated successfully")
	}
}
