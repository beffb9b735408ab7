package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"gorm.io/gorm"
)

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Filtering params
		page := controllers.PageOf(c)
		search := controllers.Search(c)

		// 2️⃣ Build base query
		query := func() *gorm.DB {
			q := db.WithContext(c.Request.Context()).Model(&models.Product{})
			if search != "" {
				q = q.Where("title LIKE ?", "%"+search+"%")
			}
			return q
		}

		// 3️⃣ Count before windowing
		var total int64
		if err := query().Count(&total).Error; err != nil {
			response.Error(c, err)
			return
		}

		// 4️⃣ Fetch the page
		var products []models.Product
		if err := query().
			Scopes(models.Paginate(page)).
			Preload("Categories").
			Preload("Colors").
			Preload("Guarantees").
			Preload("Attributes.Attribute").
			Preload("Gallery").
			Order("id DESC").
			Find(&products).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.List(c, products, total, page, "")
	}
}
