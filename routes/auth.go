package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qasemB/Ecommerce-Api/auth"
	"github.com/qasemB/Ecommerce-Api/middleware"
)

// SetupAuthRoutes registers all “/api/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register(deps.DB, deps.Tokens))
		authGroup.POST("/login", auth.Login(deps.DB, deps.Tokens))

		// Token protected
		authed := authGroup.Group("")
		authed.Use(middleware.ValidateToken(deps.Tokens, deps.Revoked, deps.DB))
		authed.GET("/user", auth.GetUser(deps.DB))
		authed.GET("/logout", auth.Logout(deps.Revoked))
	}
}
