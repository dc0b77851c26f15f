package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACKWAVE2025/B54/internal/alerts"
	"github.com/HACKWAVE2025/B54/internal/http/response"
)

type AlertHandler struct {
	notifier *alerts.Notifier
}

func NewAlertHandler(notifier *alerts.Notifier) *AlertHandler {
	return &AlertHandler{notifier: notifier}
}

type alertReq struct {
	Location string `json:"location"`
}

// POST /api/alerts/sos
func (h *AlertHandler) SOS(c *gin.Context) {
	h.dispatch(c, alerts.SOS)
}

// POST /api/alerts/driving
func (h *AlertHandler) Driving(c *gin.Context) {
	h.dispatch(c, alerts.Crash)
}

// dispatch always answers 200 with the dispatch result; a failed send is
// reported in the body.
func (h *AlertHandler) dispatch(c *gin.Context, compose func(location string) alerts.Alert) {
	var req alertReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	a := compose(req.Location)
	res := h.notifier.Notify(c.Request.Context(), a)
	response.RespondOK(c, gin.H{
		"kind":    a.Kind,
		"channel": h.notifier.Channel(),
		"success": res.Success,
		"error":   res.Error,
	})
}
