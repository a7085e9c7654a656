package handler

import (
	"github.com/gin-gonic/gin"
	productionapp "github.com/stockyard/backend/internal/application/production"
)

// ProductionOrderHandler handles production order endpoints
type ProductionOrderHandler struct {
	BaseHandler
	orderService *productionapp.OrderService
}

// NewProductionOrderHandler creates a new ProductionOrderHandler
func NewProductionOrderHandler(orderService *productionapp.OrderService) *ProductionOrderHandler {
	return &ProductionOrderHandler{orderService: orderService}
}

// Create creates a production order, consuming raw material stock and
// crediting the output product atomically
func (h *ProductionOrderHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req productionapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	order, err := h.orderService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns a production order with its inputs
func (h *ProductionOrderHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orgID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns the organization's production orders, paginated
func (h *ProductionOrderHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, orders)
}

// Update changes a production order's metadata
func (h *ProductionOrderHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req productionapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), orgID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ChangeStatus moves the order through its workflow. Status changes
// never touch stock.
func (h *ProductionOrderHandler) ChangeStatus(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req productionapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), orgID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete removes a production order record. Stock is not reversed.
func (h *ProductionOrderHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orgID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
