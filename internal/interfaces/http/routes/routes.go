// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/session"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes. Every route group runs behind the
// session middleware so each request reaches its session's store
// container with the current identity already reconciled.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, manager *session.Manager, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, manager, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, manager, cfg)
	favoritesHandler := handlers.NewFavoritesHandler(db, manager, cfg)

	auth := rg.Group("/auth")
	auth.Use(middleware.OptionalAuthMiddleware(cfg), middleware.Session(cfg, manager))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg), middleware.Session(cfg, manager))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	favorites := rg.Group("/favorites")
	favorites.Use(middleware.OptionalAuthMiddleware(cfg), middleware.Session(cfg, manager))
	{
		favorites.GET("", favoritesHandler.GetFavorites)
		favorites.GET("/:id", favoritesHandler.CheckFavorite)
		favorites.POST("/:id/toggle", favoritesHandler.ToggleFavorite)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
	}
}
