package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/services"
	"github.com/dashhub/productivity-service/internal/utils"
	"github.com/dashhub/productivity-service/internal/validator"
)

// CalculatorHandler exposes the calculator history endpoints
type CalculatorHandler struct {
	BaseHandler
	service services.CalculatorService
}

func NewCalculatorHandler(service services.CalculatorService, logger utils.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *CalculatorHandler) SaveEntry(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req validator.CalculatorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	entry, err := h.service.Save(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetLast returns the newest entry, or null when the history is empty
func (h *CalculatorHandler) GetLast(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	entry, err := h.service.GetLast(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *CalculatorHandler) GetHistory(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	history, err := h.service.GetHistory(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
