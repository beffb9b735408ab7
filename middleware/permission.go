package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/access"
	"github.com/qasemB/Ecommerce-Api/auth"
	"github.com/qasemB/Ecommerce-Api/response"
)

// CheckPermission denies the request unless the current user's roles grant
// the matched route. A route missing from the registry has no permission
// row, so only a super role passes it.
func CheckPermission(evaluator *access.Evaluator, registry *access.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			response.Forbidden(c)
			return
		}
		route, ok := registry.Resolve(c.Request.Method, c.FullPath())
		if !ok {
			route, ok = registry.Derive(c.Request.Method, c.FullPath())
		}
		if !ok {
			response.Forbidden(c)
			return
		}
		if evaluator.Authorize(c.Request.Context(), user.ID, route) == access.Deny {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}
