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

type AttributeInput struct {
	Title    string `json:"title" binding:"required,max=255,text"`
	Unit     string `json:"unit" binding:"required,max=50,text"`
	InFilter *bool  `json:"in_filter" binding:"required"`
}

// GET /api/admin/categories/:id/attributes
func GetCategoryAttributes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		db := db.WithContext(c.Request.Context())
		if err := db.Select("id").First(&models.Category{}, categoryID).Error; err != nil {
			response.Error(c, err)
			return
		}
		var attrs []models.Attribute
		if err := db.Where("category_id = ?", categoryID).Order("id").Find(&attrs).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, attrs, "")
	}
}

// POST /api/admin/categories/:id/attributes
func CreateCategoryAttribute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var in AttributeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())
		if err := db.Select("id").First(&models.Category{}, categoryID).Error; err != nil {
			response.Error(c, err)
			return
		}

		attr := models.Attribute{CategoryID: categoryID, Title: in.Title, Unit: in.Unit, InFilter: *in.InFilter}
		if err := db.Create(&attr).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, attr, "Attribute created successfully")
	}
}

// GET /api/admin/categories/attributes/:id
func GetAttribute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var attr models.Attribute
		if err := db.WithContext(c.Request.Context()).First(&attr, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, attr, "")
	}
}

// PUT /api/admin/categories/attributes/:id
func UpdateAttribute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var in AttributeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())

		var attr models.Attribute
		if err := db.First(&attr, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		attr.Title = in.Title
		attr.Unit = in.Unit
		attr.InFilter = *in.InFilter
		if err := db.Save(&attr).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, attr, "Attribute updated successfully")
	}
}

// DELETE /api/admin/categories/attributes/:id
func DeleteAttribute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("attribute_id = ?", id).Delete(&models.ProductAttribute{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.Attribute{}, id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return models.ErrNotFound
			}
			return nil
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, http.StatusOK, "Attribute deleted successfully")
	}
}
