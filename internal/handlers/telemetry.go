package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errLoadLogs = "failed to load logs"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// Browsers request the icon on every page load; an empty 200 keeps the
// access log clean.
func (h *Handler) favicon(c *gin.Context) {
	c.Status(http.StatusOK)
}

// @Summary      Current sensor reading
// @Description  Returns the latest temperature/humidity reading. While no trustworthy reading is available the fixed fallback record is served instead; consumers never see an error.
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  models.SensorReading
// @Router       /api/v1/telemetry [get]
func (h *Handler) getTelemetry(c *gin.Context) {
	reading, _ := h.services.Monitoring.Current(c.Request.Context())
	c.JSON(http.StatusOK, reading)
}

// @Summary      Access point status
// @Description  Settled bring-up state and link info from startup.
// @Tags         network
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state, link"
// @Router       /api/v1/network [get]
func (h *Handler) getNetwork(c *gin.Context) {
	state, link := h.services.Network.Status()
	c.JSON(http.StatusOK, gin.H{
		"state": state,
		"link":  link,
	})
}
