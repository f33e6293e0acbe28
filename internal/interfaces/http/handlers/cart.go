// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/session"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	manager        *session.Manager
	catalogService *catalog.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, manager *session.Manager, cfg *config.Config) *CartHandler {
	return &CartHandler{
		manager:        manager,
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest represents update cart item request. Quantity is
// a pointer so an explicit zero (remove) binds correctly.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.cartStore(c)
	if store == nil {
		return
	}
	h.respondCart(c, store)
}

// AddToCart handles POST /cart/items. The product's name, price and
// image are captured from the catalog at this moment; the line item
// keeps that snapshot even if the catalog changes later.
func (h *CartHandler) AddToCart(c *gin.Context) {
	store := h.cartStore(c)
	if store == nil {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.Get(c.Request.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found or inactive",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}

	store.AddItem(c.Request.Context(), cart.Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
	})

	h.respondCart(c, store)
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	store := h.cartStore(c)
	if store == nil {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	h.respondCart(c, store)
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	store := h.cartStore(c)
	if store == nil {
		return
	}

	store.RemoveItem(c.Request.Context(), c.Param("id"))
	h.respondCart(c, store)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.cartStore(c)
	if store == nil {
		return
	}

	store.Clear(c.Request.Context())
	h.respondCart(c, store)
}

func (h *CartHandler) cartStore(c *gin.Context) *cart.Store {
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not resolved",
		})
		return nil
	}
	return h.manager.Container(c.Request.Context(), sessionID).Cart
}

func (h *CartHandler) respondCart(c *gin.Context, store *cart.Store) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items":  store.Items(),
			"totals": store.GetTotals(),
		},
	})
}
