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

type GalleryInput struct {
	Image  string `json:"image" binding:"required,max=255"`
	IsMain bool   `json:"is_main"`
}

// AddGalleryImage records an already stored image path for a product. A
// main image also becomes the product image.
// POST /api/admin/products/:id/gallery
func AddGalleryImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var in GalleryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}

		image := models.Gallery{ProductID: id, Image: in.Image, IsMain: in.IsMain}
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.First(&product, id).Error; err != nil {
				return err
			}
			if in.IsMain {
				if err := tx.Model(&models.Gallery{}).Where("product_id = ?", id).Update("is_main", false).Error; err != nil {
					return err
				}
				if err := tx.Model(&product).Update("image", in.Image).Error; err != nil {
					return err
				}
			}
			return tx.Create(&image).Error
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, image, "Image saved successfully")
	}
}

// DELETE /api/admin/products/gallery/:id
func DeleteGalleryImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		result := db.WithContext(c.Request.Context()).Delete(&models.Gallery{}, id)
		if result.Error != nil {
			response.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			response.Error(c, models.ErrNotFound)
			return
		}
		response.Message(c, http.StatusOK, "Image deleted successfully")
	}
}
