package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// WishlistHandler handles saved-item HTTP requests
type WishlistHandler struct {
	BaseHandler
	wishlistService *storefront.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *storefront.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", h.View)
		wishlist.POST("/items", h.AddItem)
		wishlist.DELETE("/items/:productId", h.RemoveItem)
	}
}

// View godoc
// @ID           getWishlist
// @Summary      Get saved items
// @Description  Returns the session's saved items. Guests see the locally stored list, customers their account wishlist.
// @Tags         wishlist
// @Produce      json
// @Success      200 {object} APIResponse[storefront.WishlistView]
// @Failure      403 {object} ErrorResponse
// @Router       /wishlist [get]
func (h *WishlistHandler) View(c *gin.Context) {
	view, err := h.wishlistService.View(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// AddItem godoc
// @ID           addWishlistItem
// @Summary      Save a product
// @Description  Adds a product to the saved items. Saving a product twice has no effect.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        request body AddItemRequest true "Product to save"
// @Success      200 {object} APIResponse[storefront.WishlistView]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /wishlist/items [post]
func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	sess := getSession(c)
	if err := h.wishlistService.Add(c.Request.Context(), sess, req.ProductID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondWithWishlist(c)
}

// RemoveItem godoc
// @ID           removeWishlistItem
// @Summary      Remove a saved product
// @Description  Drops a product from the saved items. Removing a product that is not saved succeeds.
// @Tags         wishlist
// @Produce      json
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[storefront.WishlistView]
// @Failure      403 {object} ErrorResponse
// @Router       /wishlist/items/{productId} [delete]
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidProductID, "Product ID is required")
		return
	}

	sess := getSession(c)
	if err := h.wishlistService.Remove(c.Request.Context(), sess, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondWithWishlist(c)
}

func (h *WishlistHandler) respondWithWishlist(c *gin.Context) {
	view, err := h.wishlistService.View(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
