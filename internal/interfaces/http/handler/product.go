package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockyard/backend/internal/application/catalog"
	"github.com/stockyard/backend/internal/domain/shared"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create creates a product. SKU and stock are server-controlled.
func (h *ProductHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	product, err := h.productService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID returns a product with its allowed units
func (h *ProductHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), orgID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns the organization's products, paginated
func (h *ProductHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	products, err := h.productService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, products)
}

// ListBelowReorderLevel returns products whose stock has fallen below
// their reorder level
func (h *ProductHandler) ListBelowReorderLevel(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products, err := h.productService.ListBelowReorderLevel(c.Request.Context(), orgID, shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Update changes a product's descriptive fields and prices
func (h *ProductHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), orgID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetAllowedUnits replaces the product's allowed transaction units
func (h *ProductHandler) SetAllowedUnits(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.SetAllowedUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.SetAllowedUnits(c.Request.Context(), orgID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product that is not referenced by any document
func (h *ProductHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), orgID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
