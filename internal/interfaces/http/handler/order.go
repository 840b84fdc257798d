package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// OrderHandler handles customer order and checkout requests
type OrderHandler struct {
	BaseHandler
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/checkout", h.Checkout)
		orders.POST("/:id/payment-session", h.PaymentSession)
	}

	addresses := rg.Group("/addresses")
	{
		addresses.GET("", h.Addresses)
		addresses.POST("", h.AddAddress)
	}
}

// CheckoutRequest is the body for placing an order
type CheckoutRequest struct {
	AddressID     string `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// AddressRequest is the body for creating a shipping address
type AddressRequest struct {
	Line1      string  `json:"line1" binding:"required"`
	Line2      *string `json:"line2"`
	City       string  `json:"city" binding:"required"`
	Country    string  `json:"country" binding:"required"`
	PostalCode *string `json:"postal_code"`
	IsDefault  bool    `json:"is_default"`
}

// List godoc
// @ID           listOrders
// @Summary      List the customer's orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[[]commerce.Order]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// Get godoc
// @ID           getOrder
// @Summary      Get one of the customer's orders
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[commerce.Order]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	result, err := h.orderService.Get(c.Request.Context(), getSession(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Checkout godoc
// @ID           checkout
// @Summary      Place an order from the account cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body CheckoutRequest true "Checkout request"
// @Success      201 {object} APIResponse[commerce.Order]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	placed, err := h.orderService.Checkout(c.Request.Context(), getSession(c), commerce.CheckoutInput{
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, placed)
}

// PaymentSession godoc
// @ID           createPaymentSession
// @Summary      Start payment for an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      201 {object} APIResponse[commerce.PaymentSession]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id}/payment-session [post]
func (h *OrderHandler) PaymentSession(c *gin.Context) {
	paymentSession, err := h.orderService.PaymentSession(c.Request.Context(), getSession(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, paymentSession)
}

// Addresses godoc
// @ID           listAddresses
// @Summary      List the customer's shipping addresses
// @Tags         addresses
// @Produce      json
// @Success      200 {object} APIResponse[[]commerce.Address]
// @Failure      401 {object} ErrorResponse
// @Router       /addresses [get]
func (h *OrderHandler) Addresses(c *gin.Context) {
	addresses, err := h.orderService.Addresses(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// AddAddress godoc
// @ID           createAddress
// @Summary      Add a shipping address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body AddressRequest true "Address"
// @Success      201 {object} APIResponse[commerce.Address]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /addresses [post]
func (h *OrderHandler) AddAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	created, err := h.orderService.AddAddress(c.Request.Context(), getSession(c), commerce.Address{
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}
