package services

import (
	"context"
	"testing"

	"github.com/dashhub/productivity-service/internal/validator"
)

func newCalculatorFixture() CalculatorService {
	return NewCalculatorService(newMemoryRepository(), testLogger(), validator.New())
}

func TestCalculatorService_SaveAndHistory(t *testing.T) {
	service := newCalculatorFixture()
	ctx := context.Background()

	entries := []struct{ expression, result string }{
		{"1+1", "2"},
		{"6*7", "42"},
		{"10/4", "2.5"},
	}
	for _, e := range entries {
		if _, err := service.Save(ctx, "user-1", &validator.CalculatorCreateRequest{
			Expression: e.expression,
			Result:     e.result,
		}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	history, err := service.GetHistory(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	if history[0].Expression != "10/4" {
		t.Errorf("expected newest-first ordering, got %s first", history[0].Expression)
	}

	last, err := service.GetLast(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetLast failed: %v", err)
	}
	if last == nil || last.Result != "2.5" {
		t.Errorf("expected last result 2.5, got %+v", last)
	}
}

func TestCalculatorService_GetLast_EmptyHistory(t *testing.T) {
	service := newCalculatorFixture()

	last, err := service.GetLast(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetLast failed: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil for empty history, got %+v", last)
	}
}

func TestCalculatorService_Save_RejectsMissingFields(t *testing.T) {
	service := newCalculatorFixture()

	_, err := service.Save(context.Background(), "user-1", &validator.CalculatorCreateRequest{Expression: "1+1"})
	if !validator.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
