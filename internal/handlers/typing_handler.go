package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dashhub/productivity-service/internal/metrics"
	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/services"
	"github.com/dashhub/productivity-service/internal/utils"
	"github.com/dashhub/productivity-service/internal/validator"
)

// TypingHandler exposes the typing test endpoints
type TypingHandler struct {
	BaseHandler
	service services.TypingService
}

func NewTypingHandler(service services.TypingService, logger utils.Logger) *TypingHandler {
	return &TypingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SubmitTest persists a new typing sample for the caller and returns the
// recomputed aggregates. The sample is always attributed to the
// authenticated caller, never to an id in the request body.
func (h *TypingHandler) SubmitTest(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req validator.SubmitTypingTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting typing test", "user_id", user.ID)

	result, err := h.service.Submit(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	metrics.TypingTestsSubmitted.Inc()
	c.JSON(http.StatusOK, result)
}

// GetStats returns the caller's last test, stored aggregates and full history
func (h *TypingHandler) GetStats(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting typing stats", "user_id", user.ID)

	stats, err := h.service.GetStats(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportHistory streams the caller's typing history as an xlsx download
func (h *TypingHandler) ExportHistory(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting typing history", "user_id", user.ID)

	file, err := h.service.ExportHistory(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("typing-history-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export")
	}
}
