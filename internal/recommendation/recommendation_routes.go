package recommendation

import (
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	recommendations := r.Group("/recommendations")
	recommendations.Use(middleware.AuthMiddleware())
	recommendations.Use(middleware.ContextLogger(logger))
	{
		recommendations.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RoleMiddleware("manager"),
			handler.Create,
		)

		recommendations.POST("/:id/process",
			middleware.RateLimitByUser(1, 5),
			middleware.RoleMiddleware("hr", "admin"),
			handler.Process,
		)

		recommendations.GET("/pending",
			middleware.RateLimitByUser(3, 10),
			middleware.RoleMiddleware("hr", "admin"),
			handler.Pending,
		)

		recommendations.GET("/processed",
			middleware.RateLimitByUser(3, 10),
			middleware.RoleMiddleware("hr", "manager", "admin"),
			handler.Processed,
		)
	}
}
