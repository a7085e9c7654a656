package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/stockyard/backend/internal/application/partner"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create creates a client
func (h *ClientHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req partnerapp.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	client, err := h.clientService.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// GetByID returns a client
func (h *ClientHandler) GetByID(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), orgID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// List returns the organization's clients, paginated
func (h *ClientHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, clients)
}

// Update changes a client's contact details
func (h *ClientHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req partnerapp.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), orgID, clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete removes a client that has no sales
func (h *ClientHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), orgID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
