package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/application/vendor"
	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// VendorHandler handles the vendor product and wallet endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *vendor.Service
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *vendor.Service) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterRoutes registers all vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	v := rg.Group("/vendor")
	{
		v.GET("/products", h.Products)
		v.POST("/products", h.CreateProduct)
		v.PUT("/products/:id", h.UpdateProduct)
		v.DELETE("/products/:id", h.DeleteProduct)
		v.GET("/wallet", h.Wallet)
	}
}

// VendorProductRequest is the body for creating or updating a vendor product
type VendorProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Stock       int              `json:"stock" binding:"min=0"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
}

func (r VendorProductRequest) toInput() commerce.VendorProductInput {
	return commerce.VendorProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
		Stock:       r.Stock,
		Category:    r.Category,
		Image:       r.Image,
	}
}

// Products godoc
// @ID           listVendorProducts
// @Summary      List the vendor's own products
// @Tags         vendor
// @Produce      json
// @Success      200 {object} APIResponse[[]commerce.Product]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /vendor/products [get]
func (h *VendorHandler) Products(c *gin.Context) {
	products, err := h.vendorService.Products(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// CreateProduct godoc
// @ID           createVendorProduct
// @Summary      Create a product listing
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Param        request body VendorProductRequest true "Product"
// @Success      201 {object} APIResponse[commerce.Product]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /vendor/products [post]
func (h *VendorHandler) CreateProduct(c *gin.Context) {
	var req VendorProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.vendorService.CreateProduct(c.Request.Context(), getSession(c), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// UpdateProduct godoc
// @ID           updateVendorProduct
// @Summary      Update a product listing
// @Tags         vendor
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body VendorProductRequest true "Product"
// @Success      200 {object} APIResponse[commerce.Product]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /vendor/products/{id} [put]
func (h *VendorHandler) UpdateProduct(c *gin.Context) {
	var req VendorProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.vendorService.UpdateProduct(c.Request.Context(), getSession(c), c.Param("id"), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// DeleteProduct godoc
// @ID           deleteVendorProduct
// @Summary      Delete a product listing
// @Tags         vendor
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /vendor/products/{id} [delete]
func (h *VendorHandler) DeleteProduct(c *gin.Context) {
	if err := h.vendorService.DeleteProduct(c.Request.Context(), getSession(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Wallet godoc
// @ID           getVendorWallet
// @Summary      Get the vendor's payout balance
// @Tags         vendor
// @Produce      json
// @Success      200 {object} APIResponse[commerce.WalletSummary]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /vendor/wallet [get]
func (h *VendorHandler) Wallet(c *gin.Context) {
	wallet, err := h.vendorService.Wallet(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wallet)
}
