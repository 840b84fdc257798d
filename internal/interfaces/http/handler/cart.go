package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CartHandler handles cart HTTP requests for both guest and customer sessions
type CartHandler struct {
	BaseHandler
	cartService *storefront.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *storefront.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.View)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:productId", h.UpdateItem)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}

// AddItemRequest is the body for adding a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateItemRequest is the body for changing a cart line quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// View godoc
// @ID           getCart
// @Summary      Get the cart
// @Description  Returns the session's cart. Guests see the locally stored cart, signed-in customers see their account cart.
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[storefront.CartView]
// @Failure      403 {object} ErrorResponse
// @Router       /cart [get]
func (h *CartHandler) View(c *gin.Context) {
	view, err := h.cartService.View(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add a product to the cart
// @Description  Adds one unit of the product. Adding a product already in the cart increases its quantity.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body AddItemRequest true "Product to add"
// @Success      200 {object} APIResponse[storefront.CartView]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	sess := getSession(c)
	if err := h.cartService.Add(c.Request.Context(), sess, req.ProductID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondWithCart(c)
}

// UpdateItem godoc
// @ID           updateCartItem
// @Summary      Set a cart line quantity
// @Description  Sets the quantity for a product. A quantity of zero or less removes the line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId path string true "Product ID"
// @Param        request body UpdateItemRequest true "New quantity"
// @Success      200 {object} APIResponse[storefront.CartView]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidProductID, "Product ID is required")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	sess := getSession(c)
	if err := h.cartService.UpdateQuantity(c.Request.Context(), sess, productID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondWithCart(c)
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove a product from the cart
// @Description  Removes the product's line entirely. Removing a product that is not in the cart succeeds.
// @Tags         cart
// @Produce      json
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[storefront.CartView]
// @Failure      403 {object} ErrorResponse
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidProductID, "Product ID is required")
		return
	}

	sess := getSession(c)
	if err := h.cartService.Remove(c.Request.Context(), sess, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondWithCart(c)
}

// Clear godoc
// @ID           clearCart
// @Summary      Empty the cart
// @Description  Removes every line from the cart. Saved items are not affected.
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[storefront.CartView]
// @Failure      403 {object} ErrorResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	sess := getSession(c)
	if err := h.cartService.Clear(c.Request.Context(), sess); err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondWithCart(c)
}

// respondWithCart returns the post-mutation cart so the frontend never
// needs a follow-up read.
func (h *CartHandler) respondWithCart(c *gin.Context) {
	view, err := h.cartService.View(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
