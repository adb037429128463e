package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/utils"
	"github.com/dashhub/productivity-service/internal/validator"
)

type stubTypingService struct {
	submitCalls int
	statsCalls  int
	submitErr   error
}

func (s *stubTypingService) Submit(ctx context.Context, user *models.User, req *validator.SubmitTypingTestRequest) (*models.SubmitTypingTestResponse, error) {
	s.submitCalls++
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &models.SubmitTypingTestResponse{
		Test:     &models.TypingTest{ID: "test-1", UserID: user.ID, WPM: *req.WPM},
		MaxSpeed: *req.WPM,
		AvgSpeed: *req.WPM,
	}, nil
}

func (s *stubTypingService) GetStats(ctx context.Context, user *models.User) (*models.TypingStatsResponse, error) {
	s.statsCalls++
	return &models.TypingStatsResponse{
		MaxTypingSpeed:     user.MaxTypingSpeed,
		AverageTypingSpeed: user.AverageTypingSpeed,
		AllTests:           []models.TypingTest{},
	}, nil
}

func (s *stubTypingService) ExportHistory(ctx context.Context, user *models.User) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

func discardLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupTypingRouter(service *stubTypingService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewTypingHandler(service, discardLogger())

	router := gin.New()
	if user != nil {
		router.Use(func(c *gin.Context) {
			c.Set(currentUserKey, user)
			c.Next()
		})
	}
	router.POST("/api/typing-tests", handler.SubmitTest)
	router.GET("/api/typing-tests/stats", handler.GetStats)
	return router
}

func TestTypingHandler_UnauthenticatedRejected(t *testing.T) {
	service := &stubTypingService{}
	router := setupTypingRouter(service, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "submit", method: http.MethodPost, path: "/api/typing-tests", body: `{"wpm":60,"accuracy":95,"mistakes":2,"duration":30}`},
		{name: "stats", method: http.MethodGet, path: "/api/typing-tests/stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}

	// Nothing may reach the service for anonymous callers
	if service.submitCalls != 0 || service.statsCalls != 0 {
		t.Errorf("expected no service calls, got submit=%d stats=%d", service.submitCalls, service.statsCalls)
	}
}

func TestTypingHandler_SubmitSuccess(t *testing.T) {
	service := &stubTypingService{}
	user := &models.User{ID: "user-1"}
	router := setupTypingRouter(service, user)

	req := httptest.NewRequest(http.MethodPost, "/api/typing-tests",
		strings.NewReader(`{"wpm":60,"accuracy":95,"mistakes":2,"duration":30}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SubmitTypingTestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MaxSpeed != 60 || resp.AvgSpeed != 60 {
		t.Errorf("expected speeds (60, 60), got (%v, %v)", resp.MaxSpeed, resp.AvgSpeed)
	}
	if resp.Test == nil || resp.Test.UserID != "user-1" {
		t.Errorf("expected test attributed to the caller, got %+v", resp.Test)
	}
}

func TestTypingHandler_SubmitInvalidBody(t *testing.T) {
	service := &stubTypingService{}
	router := setupTypingRouter(service, &models.User{ID: "user-1"})

	req := httptest.NewRequest(http.MethodPost, "/api/typing-tests", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if service.submitCalls != 0 {
		t.Errorf("expected no service call for malformed body, got %d", service.submitCalls)
	}
}

func TestTypingHandler_SubmitValidationErrorMapped(t *testing.T) {
	service := &stubTypingService{
		submitErr: validator.ValidationErrors{{Field: "wpm", Rule: "lte", Message: "wpm must be at most 500"}},
	}
	router := setupTypingRouter(service, &models.User{ID: "user-1"})

	req := httptest.NewRequest(http.MethodPost, "/api/typing-tests",
		strings.NewReader(`{"wpm":900,"accuracy":95,"mistakes":2,"duration":30}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "validation_failed" || len(resp.ValidationErrors) != 1 {
		t.Errorf("expected a validation error payload, got %+v", resp)
	}
}
