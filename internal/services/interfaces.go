package services

import (
	"context"
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/validator"
)

// ===== SERVICE ERRORS =====

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrEntryNotFound      = errors.New("calculator entry not found")
	ErrNotOwner           = errors.New("record does not belong to the caller")
	ErrIdentityIncomplete = errors.New("provider identity has no subject id")
)

// ProviderIdentity is the assertion delivered by the identity provider
// after a completed authorization step
type ProviderIdentity struct {
	SubjectID   string
	DisplayName string
	Emails      []string
}

// IdentityService resolves provider identities to local users
type IdentityService interface {
	// Resolve returns the local user for the identity, creating one with
	// zero-valued aggregates on first sight. Profile fields of existing
	// users are left untouched.
	Resolve(ctx context.Context, identity ProviderIdentity) (*models.User, error)

	// CurrentUser re-reads the user bound to a session identifier
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// TypingService is the typing stats aggregator
type TypingService interface {
	// Submit persists a new sample for the user, recomputes the max and
	// rounded average wpm from the full history and overwrites the
	// stored aggregates.
	Submit(ctx context.Context, user *models.User, req *validator.SubmitTypingTestRequest) (*models.SubmitTypingTestResponse, error)

	// GetStats returns the newest sample, stored aggregates and the
	// full newest-first history.
	GetStats(ctx context.Context, user *models.User) (*models.TypingStatsResponse, error)

	// ExportHistory renders the user's full history as a spreadsheet
	ExportHistory(ctx context.Context, user *models.User) (*excelize.File, error)
}

// TodoService manages user-owned todos
type TodoService interface {
	Create(ctx context.Context, userID string, req *validator.TodoCreateRequest) (*models.Todo, error)
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Update(ctx context.Context, userID, todoID string, req *validator.TodoUpdateRequest) (*models.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
}

// CalculatorService manages user-owned calculation history
type CalculatorService interface {
	Save(ctx context.Context, userID string, req *validator.CalculatorCreateRequest) (*models.CalculatorEntry, error)
	GetLast(ctx context.Context, userID string) (*models.CalculatorEntry, error)
	GetHistory(ctx context.Context, userID string) ([]models.CalculatorEntry, error)
}

// ServiceManager aggregates all services
type ServiceManager interface {
	Identity() IdentityService
	Typing() TypingService
	Todo() TodoService
	Calculator() CalculatorService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
