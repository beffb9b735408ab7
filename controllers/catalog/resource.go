// Package catalogControllers serves the small lookup tables products refer
// to: colors, brands, guarantees and deliveries.
package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/controllers"
	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/qasemB/Ecommerce-Api/response"
	"github.com/qasemB/Ecommerce-Api/validation"
	"gorm.io/gorm"
)

// resource wires the five CRUD handlers of one table. M is the gorm model,
// I the bound request body.
type resource[M any, I any] struct {
	noun string
	// unique names the field reported when an insert or update hits a
	// unique index.
	unique string
	apply  func(in I, m *M)
}

func (r resource[M, I]) save(db *gorm.DB, m *M) error {
	err := db.Save(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.Invalid(r.unique, "has already been taken")
	}
	return err
}

func (r resource[M, I]) List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []M
		if err := db.WithContext(c.Request.Context()).Order("id").Find(&rows).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, rows, "")
	}
}

func (r resource[M, I]) Create(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in I
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		var m M
		r.apply(in, &m)
		if err := r.save(db.WithContext(c.Request.Context()), &m); err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, m, r.noun+" created successfully")
	}
}

func (r resource[M, I]) Show(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var m M
		if err := db.WithContext(c.Request.Context()).First(&m, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, m, "")
	}
}

func (r resource[M, I]) Update(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var in I
		if err := c.ShouldBindJSON(&in); err != nil {
			response.Error(c, validation.FromBinding(err))
			return
		}
		db := db.WithContext(c.Request.Context())
		var m M
		if err := db.First(&m, id).Error; err != nil {
			response.Error(c, err)
			return
		}
		r.apply(in, &m)
		if err := r.save(db, &m); err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, m, r.noun+" updated successfully")
	}
}

func (r resource[M, I]) Delete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParamID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var m M
		result := db.WithContext(c.Request.Context()).Delete(&m, id)
		if result.Error != nil {
			response.Error(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			response.Error(c, models.ErrNotFound)
			return
		}
		response.Message(c, http.StatusOK, r.noun+" deleted successfully")
	}
}
