package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"gorm.io/gorm"
)

// DeleteProduct soft deletes a product after detaching it from categories,
// colors and guarantees. Cart items keep pointing at it.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Parse product ID
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}

		// 2️⃣ Fetch product
		var product models.Product
		if err := db.WithContext(c.Request.Context()).First(&product, id).Error; err != nil {
			response.Error(c, err)
			return
		}

		// 3️⃣ Clear associations and delete in one transaction
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			for _, assoc := range []string{"Categories", "Colors", "Guarantees"} {
				if err := tx.Model(&product).Association(assoc).Clear(); err != nil {
					return err
				}
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Message(c, http.StatusOK, "Product deleted successfully")
	}
}
