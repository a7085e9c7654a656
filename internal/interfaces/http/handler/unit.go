package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockyard/backend/internal/application/catalog"
)

// UnitHandler handles measurement unit endpoints
type UnitHandler struct {
	BaseHandler
	unitService *catalogapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *catalogapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// Create creates a unit, optionally derived from a base unit with a
// conversion factor
func (h *UnitHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req catalogapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	unit, err := h.unitService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// GetByID returns a unit
func (h *UnitHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	unitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	unit, err := h.unitService.GetByID(c.Request.Context(), orgID, unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// List returns the organization's units, paginated
func (h *UnitHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	units, err := h.unitService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, units)
}

// Update changes a unit's name, symbol or conversion chain
func (h *UnitHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	unitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	var req catalogapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), orgID, unitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// Delete removes a unit that is not referenced by other records
func (h *UnitHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	unitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), orgID, unitID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
