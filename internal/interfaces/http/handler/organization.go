package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/stockyard/backend/internal/application/identity"
)

// OrganizationHandler handles organization endpoints
type OrganizationHandler struct {
	BaseHandler
	orgService *identityapp.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgService *identityapp.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// Create creates an organization for a user that has none yet and
// makes them its admin. The caller must re-authenticate afterwards to
// pick up the new membership claims.
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, org)
}

// GetCurrent returns the caller's organization
func (h *OrganizationHandler) GetCurrent(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	org, err := h.orgService.GetCurrent(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, org)
}

// Update changes the caller's organization details. Admin only.
func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req identityapp.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), orgID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, org)
}
