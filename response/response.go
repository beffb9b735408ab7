// Package response writes the JSON bodies shared by every admin handler.
package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/models"
	"gorm.io/gorm"
)

const (
	AccessDeniedMessage = "You do not have access to this section"
	invalidDataMessage  = "The given data was invalid."
)

// Data writes {"data": ..., "message": ...}.
func Data(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"data": data, "message": message})
}

// Message writes {"message": ...}.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// List writes a listing. When page is enabled the body also carries the
// total row count and the window.
func List(c *gin.Context, data any, total int64, page models.Page, message string) {
	body := gin.H{"data": data, "message": message}
	if page.Enabled() {
		body["total"] = total
		body["page"] = page.Page
		body["count"] = page.Count
	}
	c.JSON(http.StatusOK, body)
}

// Error maps err onto the error taxonomy and aborts the request. Unexpected
// errors are logged and reported generically.
func Error(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"message": invalidDataMessage,
			"errors":  ve.Fields,
		})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"message": invalidDataMessage,
			"errors":  gin.H{"id": []string{"is still referenced by other records"}},
		})
	case errors.Is(err, models.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, models.ErrForbidden):
		Forbidden(c)
	case errors.Is(err, models.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Forbidden aborts with the fixed access-denied body. It never says which
// permission was missing.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": AccessDeniedMessage})
}
