package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes sets up all the routes for the URL shortener service.
func RegisterRoutes(r *gin.Engine, handler HandlerInterface) {
	r.Use(CORSMiddleware())

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", handler.Register)
		authRoutes.POST("/login", handler.Login)
	}

	r.POST("/url", handler.OptionalAuthGate(), handler.Shorten)

	user := r.Group("/user", handler.AuthGate())
	{
		user.GET("/urls", handler.ListURLs)
		user.GET("/url/:short_code", handler.GetURL)
		user.PATCH("/url", handler.UpdateURL)
		user.DELETE("/url", handler.DeleteURL)
	}

	r.GET("/health", handler.HealthCheck)

	// user-facing redirect lives at the root
	r.GET("/:short_code", handler.Redirect)
}
