package routes

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"soltoken/internal/handlers"
	"soltoken/internal/middleware"
)

// SetupRouter returns the gin router with all routes configured
func SetupRouter(h *handlers.Handler, limiter *middleware.RateLimiters) *gin.Engine {
	r := gin.Default()

	r.Any("/health", func(c *gin.Context) {
		c.String(200, "ok")
	})

	r.Use(corsMiddleware(allowedOrigins(os.Getenv("ALLOWED_ORIGINS"))))
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	SetupTokenConfigRoutes(r, h)
	return r
}

// allowedOrigins parses a comma-separated origin list
func allowedOrigins(raw string) map[string]bool {
	origins := make(map[string]bool)
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins[trimmed] = true
		}
	}
	return origins
}

func corsMiddleware(allowed map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
