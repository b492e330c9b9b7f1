package routes

import (
	"github.com/gin-gonic/gin"

	"soltoken/internal/handlers"
)

// SetupTokenConfigRoutes sets up the token registry and balance routes
func SetupTokenConfigRoutes(r *gin.Engine, h *handlers.Handler) {
	token := r.Group("/token-config")
	{
		token.GET("", h.ListTokenConfigs)
		token.GET("/by-mint/:mint", h.GetTokenConfigByMint)
	}

	r.GET("/token-operations", h.ListTokenOperations)
	r.GET("/balance/:mint", h.GetBalance)
}
