package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// ProductHandler handles the public catalog endpoints
type ProductHandler struct {
	BaseHandler
	catalogService *catalog.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
	}
}

// List godoc
// @ID           listProducts
// @Summary      Browse the catalog
// @Description  Lists products with optional search, category and vendor filters. No sign-in required.
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search term"
// @Param        category query string false "Category filter"
// @Param        vendor_id query string false "Vendor filter"
// @Success      200 {object} APIResponse[[]storefront.ProductView]
// @Failure      502 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	products, err := h.catalogService.List(c.Request.Context(), commerce.ProductQuery{
		Search:   req.Search,
		Category: req.Category,
		VendorID: req.VendorID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]*storefront.ProductView, 0, len(products))
	for i := range products {
		views = append(views, storefront.NewProductView(&products[i]))
	}

	h.SuccessWithMeta(c, views, req.Page, req.PageSize, len(views))
}

// Get godoc
// @ID           getProduct
// @Summary      Get a product
// @Description  Returns a single product by ID.
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[storefront.ProductView]
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalogService.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, storefront.NewProductView(product))
}
