package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports backing store availability
type Pinger interface {
	Ping() error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Check reports service and database health
func (h *HealthHandler) Check(c *gin.Context) {
	code := http.StatusOK
	status := "ok"
	dbStatus := "up"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			code = http.StatusServiceUnavailable
			status = "degraded"
			dbStatus = "down"
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"version":  h.version,
		"database": dbStatus,
	})
}
