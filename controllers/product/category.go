package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Title        string `json:"title" binding:"required,max=255,text"`
	Descriptions string `json:"descriptions" binding:"omitempty,text"`
	ParentID     *uint  `json:"parent_id"`
	Image        string `json:"image" binding:"omitempty,max=255"`
	ShowInMenu   *bool  `json:"show_in_menu"`
	IsActive     *bool  `json:"is_active"`
}

func (in CategoryInput) apply(cat *models.Category) {
	cat.Title = in.Title
	cat.Descriptions = in.Descriptions
	cat.ParentID = in.ParentID
	if in.Image != "" {
		cat.Image = in.Image
	}
	if in.ShowInMenu != nil {
		cat.ShowInMenu = *in.ShowInMenu
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
}

func checkParent(db *gorm.DB, selfID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == selfID {
		return models.Invalid("parent_id", "cannot be the category itself")
	}
	missing, err := controllers.MissingIDs(db, &models.Category{}, []uint{*parentID})
	if err != nil {
		return err
	}
	if missing[*parentID] {
		return models.Invalid("parent_id", "is invalid")
	}
	return nil
}

func saveCategory(db *gorm.DB, cat *models.Category) error {
	err := db.Save(cat).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.Invalid("title", "has already been taken")
	}
	return err
}

// GetCategories lists the children of ?parent=, or the root categories.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.WithContext(c.Request.Context())
		if parent := c.Query("parent"); parent != "" {
			pid, err := strconv.ParseUint(parent, 10, 64)
			if err != nil {
				response.Error(c, models.Invalid("parent", "must be a number"))
				return
			}
			q = q.Where("parent_id = ?", pid)
		} else {
			q = q.Where("parent_id IS NULL")
		}

		var categories []models.Category
		if err := q.Order("id").Find(&categories).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, categories, "")
	}
}

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())
		if err := checkParent(db, 0, in.ParentID); err != nil {
			response.Error(c, err)
			return
		}

		category := models.Category{IsActive: true, ShowInMenu: true}
		in.apply(&category)
		if err := saveCategory(db, &category); err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, category, "Category created successfully")
	}
}

func GetCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var category models.Category
		if err := db.WithContext(c.Request.Context()).Preload("Attributes").First(&category, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, category, "")
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var in CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		if err := checkParent(db, category.ID, in.ParentID); err != nil {
			response.Error(c, err)
			return
		}
		in.apply(&category)
		if err := saveCategory(db, &category); err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, category, "Category updated successfully")
	}
}

func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		result := db.WithContext(c.Request.Context()).Delete(&models.Category{}, id)
		if result.Error != nil {
			response.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			response.Error(c, models.ErrNotFound)
			return
		}
		response.Message(c, http.StatusOK, "Category deleted successfully")
	}
}
