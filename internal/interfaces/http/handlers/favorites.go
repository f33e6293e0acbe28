// internal/interfaces/http/handlers/favorites.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/favorites"
	"github.com/your-org/storefront-backend/internal/domain/session"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// FavoritesHandler handles favorites endpoints
type FavoritesHandler struct {
	manager        *session.Manager
	catalogService *catalog.Service
	config         *config.Config
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(db *gorm.DB, manager *session.Manager, cfg *config.Config) *FavoritesHandler {
	return &FavoritesHandler{
		manager:        manager,
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// GetFavorites handles GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	store := h.favoritesStore(c)
	if store == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"favorites": store.Favorites(),
			"loading":   store.Loading(),
		},
	})
}

// ToggleFavorite handles POST /favorites/:id/toggle
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	store := h.favoritesStore(c)
	if store == nil {
		return
	}

	productID := c.Param("id")
	if _, err := h.catalogService.Get(c.Request.Context(), productID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found or inactive",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}

	favorited, err := store.Toggle(c.Request.Context(), productID)
	switch {
	case errors.Is(err, favorites.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Login required to favorite products",
		})
		return
	case errors.Is(err, favorites.ErrLoading):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Favorites are still loading, try again",
		})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	message := "Product removed from favorites"
	if favorited {
		message = "Product added to favorites"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"product_id":  productID,
			"is_favorite": favorited,
		},
	})
}

// CheckFavorite handles GET /favorites/:id
func (h *FavoritesHandler) CheckFavorite(c *gin.Context) {
	store := h.favoritesStore(c)
	if store == nil {
		return
	}

	productID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"product_id":  productID,
			"is_favorite": store.IsFavorite(productID),
		},
	})
}

func (h *FavoritesHandler) favoritesStore(c *gin.Context) *favorites.Store {
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not resolved",
		})
		return nil
	}
	return h.manager.Container(c.Request.Context(), sessionID).Favorites
}
