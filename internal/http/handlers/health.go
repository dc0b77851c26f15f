package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthInfo struct {
	Version      string
	Model        string
	AlertChannel string
}

type HealthHandler struct {
	info    HealthInfo
	started time.Time
}

func NewHealthHandler(info HealthInfo) *HealthHandler {
	return &HealthHandler{info: info, started: time.Now()}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"version":      h.info.Version,
		"model":        h.info.Model,
		"alertChannel": h.info.AlertChannel,
		"uptime":       time.Since(h.started).Round(time.Second).String(),
	})
}
