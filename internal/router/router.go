// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pricewise/pricewise-backend/internal/config"
	"github.com/pricewise/pricewise-backend/internal/handlers"
	"github.com/pricewise/pricewise-backend/internal/middleware"
	"github.com/pricewise/pricewise-backend/internal/services"
	"github.com/pricewise/pricewise-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	productService := services.NewProductService(db)
	sellerFinderService := services.NewSellerFinderService(cfg.AI)
	userService := services.NewUserService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	sellerHandler := handlers.NewSellerHandler(sellerFinderService)
	userHandler := handlers.NewUserHandler(userService)

	// Tokens come from the identity provider; we share its signing secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetJWTIssuer(cfg.JWT.Issuer)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Shared catalog routes
		publicProducts := v1.Group("/public-products")
		{
			publicProducts.GET("/lookup", middleware.OptionalAuth(), productHandler.LookupPublicProduct)
		}

		// Product routes (a user's private list over the shared catalog)
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.SaveProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// AI seller lookup
		sellers := v1.Group("/sellers")
		sellers.Use(middleware.AuthRequired())
		{
			sellers.POST("/find", middleware.SellerLookupRateLimit(), sellerHandler.FindSellers)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/profile", userHandler.UpdateProfile)
		}
	}

	return r
}
