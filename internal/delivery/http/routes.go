package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sburdges-eng/lariat-bible-sub000/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerClient))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		vendors := v1.Group("/vendors")
		{
			vendors.GET("", handler.ListVendors)
			vendors.POST("/:vendor/catalog", handler.ImportCatalog)
			vendors.GET("/:vendor/catalog", handler.GetCatalog)
		}

		comparisons := v1.Group("/comparisons")
		{
			comparisons.POST("", handler.Compare)
			comparisons.POST("/verify", handler.VerifyMatch)
			comparisons.POST("/adopt", handler.AdoptMatch)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", handler.ListIngredients)
			ingredients.POST("", handler.UpsertIngredient)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.POST("/cost", handler.CostRecipe)
			recipes.GET("/:id/snapshots", handler.SnapshotHistory)
			recipes.GET("/:id/variance", handler.SnapshotVariance)
		}
	}

	return router
}
