package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/services"
	"github.com/dashhub/productivity-service/internal/utils"
	"github.com/dashhub/productivity-service/internal/validator"
)

const currentUserKey = "current_user"

// BaseHandler carries the shared handler dependencies
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a BaseHandler
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming operation with the request id
func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

// LogError logs a failed operation with the request id
func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, append(args, "error", err)...)
}

// CurrentUser returns the authenticated user resolved by the session
// middleware, or nil when the caller is anonymous
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireUser returns the authenticated caller or writes a 401.
// Authentication is checked explicitly in every protected handler.
func (h BaseHandler) RequireUser(c *gin.Context) (*models.User, bool) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "Not authenticated",
		})
		return nil, false
	}
	return user, true
}

// handleServiceError maps service errors onto HTTP responses
func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]models.ValidationErrorResponse, 0, len(validationErrors))
		for _, ve := range validationErrors {
			details = append(details, models.ValidationErrorResponse{
				Field:   ve.Field,
				Rule:    ve.Rule,
				Message: ve.Message,
			})
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:            "validation_failed",
			Message:          "Request validation failed",
			ValidationErrors: details,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrNotOwner):
		// Owner mismatch is reported as not-found so ids are not leaked
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Record not found",
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "Not authenticated",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Operation failed",
		})
	}
}
