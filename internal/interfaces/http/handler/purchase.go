package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/stockyard/backend/internal/application/trade"
)

// PurchaseHandler handles purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create creates a purchase with its line items and credits stock
// atomically
func (h *PurchaseHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, purchase)
}

// GetByID returns a purchase with its line items
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), orgID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// List returns the organization's purchases, paginated
func (h *PurchaseHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	purchases, err := h.purchaseService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, purchases)
}

// Update changes a purchase's metadata. Items and total are immutable.
func (h *PurchaseHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req tradeapp.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	purchase, err := h.purchaseService.Update(c.Request.Context(), orgID, purchaseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete removes a purchase record. Stock is not reversed.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), orgID, purchaseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
