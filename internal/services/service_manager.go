package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dashhub/productivity-service/internal/events"
	"github.com/dashhub/productivity-service/internal/repositories"
	"github.com/dashhub/productivity-service/internal/validator"
)

// serviceManager implements ServiceManager
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	identityService   IdentityService
	typingService     TypingService
	todoService       TodoService
	calculatorService CalculatorService

	initialized bool
	mu          sync.Mutex
}

// NewDefaultServiceManager creates the service manager with all services
func NewDefaultServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// Initialize wires up all service instances
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}

	sm.identityService = NewIdentityService(sm.repo, sm.logger)
	sm.typingService = NewTypingService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.todoService = NewTodoService(sm.repo, sm.logger, sm.validator)
	sm.calculatorService = NewCalculatorService(sm.repo, sm.logger, sm.validator)

	sm.initialized = true
	sm.logger.Info("services initialized")
	return nil
}

func (sm *serviceManager) Identity() IdentityService {
	return sm.identityService
}

func (sm *serviceManager) Typing() TypingService {
	return sm.typingService
}

func (sm *serviceManager) Todo() TodoService {
	return sm.todoService
}

func (sm *serviceManager) Calculator() CalculatorService {
	return sm.calculatorService
}

// Shutdown releases service-held resources
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	sm.initialized = false
	sm.logger.Info("services shut down")
	return nil
}
