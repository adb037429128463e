package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/services"
	"github.com/dashhub/productivity-service/internal/utils"
	"github.com/dashhub/productivity-service/internal/validator"
)

// TodoHandler exposes the todo CRUD endpoints
type TodoHandler struct {
	BaseHandler
	service services.TodoService
}

func NewTodoHandler(service services.TodoService, logger utils.Logger) *TodoHandler {
	return &TodoHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req validator.TodoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	todo, err := h.service.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) ListTodos(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	todos, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req validator.TodoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	todo, err := h.service.Update(c.Request.Context(), user.ID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
