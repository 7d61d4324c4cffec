package routes

import (
	"net/http"

	"realestate-app/database"
	authapi "realestate-app/internal/api/auth"
	metricsapi "realestate-app/internal/api/metrics"
	ownersapi "realestate-app/internal/api/owners"
	propertiesapi "realestate-app/internal/api/properties"
	"realestate-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/db", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", metricsapi.GetMetrics)
	r.GET("/metrics/cache", metricsapi.GetCacheMetrics)
	r.GET("/metrics/requests", metricsapi.GetRequestMetrics)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/login", authapi.Login)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/owners/:id", ownersapi.GetOwner)
	auth.GET("/properties/:id/traces", propertiesapi.GetPropertyTraces)

	realEstate := auth.Group("/api/realEstate")
	realEstate.POST("/CreateProperty", propertiesapi.CreateProperty)
	realEstate.POST("/AddImageProperty", propertiesapi.AddImageProperty)
	realEstate.POST("/ChangePrice", propertiesapi.ChangePrice)
	realEstate.POST("/UpdateProperty", propertiesapi.UpdateProperty)
	realEstate.POST("/ListPropertyWithFilters", propertiesapi.ListPropertyWithFilters)
}
