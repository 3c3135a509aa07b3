package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reaxo/reaxo/internal/analytics"
)

// UsageHandler exposes the relay usage log for operators.
type UsageHandler struct {
	service analytics.Service
}

func NewUsageHandler(service analytics.Service) *UsageHandler {
	return &UsageHandler{service: service}
}

func (h *UsageHandler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.service.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   entries,
	})
}
