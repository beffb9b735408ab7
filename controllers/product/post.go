package productcontroller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

// ProductInput is the body of product create and update. Image fields carry
// paths of already stored files.
type ProductInput struct {
	Title             string   `json:"title" binding:"required,max=255,text"`
	Price             int64    `json:"price" binding:"required,min=0,max=1000000000000"`
	Weight            *float64 `json:"weight" binding:"omitempty,min=0"`
	BrandID           *uint    `json:"brand_id"`
	Descriptions      string   `json:"descriptions"`
	ShortDescriptions string   `json:"short_descriptions" binding:"omitempty,text"`
	CartDescriptions  string   `json:"cart_descriptions" binding:"omitempty,text"`
	Image             string   `json:"image" binding:"omitempty,max=255"`
	AltImage          string   `json:"alt_image" binding:"omitempty,text"`
	Keywords          string   `json:"keywords" binding:"omitempty,text"`
	Stock             *int     `json:"stock" binding:"omitempty,min=0"`
	Discount          *int     `json:"discount" binding:"omitempty,min=0,max=100"`
	IsActive          *bool    `json:"is_active"`
	CategoryIDs       []uint   `json:"category_ids" binding:"required,min=1"`
	ColorIDs          []uint   `json:"color_ids"`
	GuaranteeIDs      []uint   `json:"guarantee_ids"`
}

func (in ProductInput) apply(p *models.Product) {
	p.Title = in.Title
	p.Price = in.Price
	p.Weight = in.Weight
	p.BrandID = in.BrandID
	p.Descriptions = in.Descriptions
	p.ShortDescriptions = in.ShortDescriptions
	p.CartDescriptions = in.CartDescriptions
	p.AltImage = in.AltImage
	p.Keywords = in.Keywords
	p.Stock = in.Stock
	p.Discount = in.Discount
	if in.Image != "" {
		p.Image = in.Image
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

// relations loads the referenced rows, reporting unknown ids per index.
type relations struct {
	categories []models.Category
	colors     []models.Color
	guarantees []models.Guarantee
}

func loadRelations(db *gorm.DB, in ProductInput) (relations, error) {
	var rel relations
	verr := models.NewValidationError()

	if in.BrandID != nil {
		missing, err := controllers.MissingIDs(db, &models.Brand{}, []uint{*in.BrandID})
		if err != nil {
			return rel, err
		}
		if missing[*in.BrandID] {
			verr.Add("brand_id", "is invalid")
		}
	}
	checks := []struct {
		field string
		model any
		ids   []uint
	}{
		{"category_ids", &models.Category{}, in.CategoryIDs},
		{"color_ids", &models.Color{}, in.ColorIDs},
		{"guarantee_ids", &models.Guarantee{}, in.GuaranteeIDs},
	}
	for _, chk := range checks {
		missing, err := controllers.MissingIDs(db, chk.model, chk.ids)
		if err != nil {
			return rel, err
		}
		for i, id := range chk.ids {
			if missing[id] {
				verr.Add(fmt.Sprintf("%s.%d", chk.field, i), "is invalid")
			}
		}
	}
	if err := verr.Err(); err != nil {
		return rel, err
	}

	if len(in.CategoryIDs) > 0 {
		if err := db.Where("id IN ?", in.CategoryIDs).Find(&rel.categories).Error; err != nil {
			return rel, err
		}
	}
	if len(in.ColorIDs) > 0 {
		if err := db.Where("id IN ?", in.ColorIDs).Find(&rel.colors).Error; err != nil {
			return rel, err
		}
	}
	if len(in.GuaranteeIDs) > 0 {
		if err := db.Where("id IN ?", in.GuaranteeIDs).Find(&rel.guarantees).Error; err != nil {
			return rel, err
		}
	}
	return rel, nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories").Preload("Colors").Preload("Guarantees").Preload("Brand")
}

// CreateProduct creates a product with its categories, colors and guarantees.
// When an image path is given it also becomes the main gallery image.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())

		rel, err := loadRelations(db, in)
		if err != nil {
			response.Error(c, err)
			return
		}

		product := models.Product{IsActive: true}
		in.apply(&product)
		product.Categories = rel.categories
		product.Colors = rel.colors
		product.Guarantees = rel.guarantees
		if product.Image != "" {
			product.Gallery = []models.Gallery{{Image: product.Image, IsMain: true}}
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Omit("Categories.*", "Colors.*", "Guarantees.*").Create(&product).Error
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		var created models.Product
		if err := withRelations(db).First(&created, product.ID).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, created, "Product created successfully")
	}
}

// GET /api/admin/products/title_is_exist/:title
func TitleIsExist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.Param("title")
		if title == "" {
			response.Error(c, models.Invalid("title", "is required"))
			return
		}
		var existing models.Product
		err := db.WithContext(c.Request.Context()).Select("id").Where("title = ?", title).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, err)
			return
		}
		isExist := err == nil
		message := "This title is available"
		if isExist {
			message = "This title has already been taken"
		}
		c.JSON(http.StatusOK, gin.H{"isExist": isExist, "message": message})
	}
}
