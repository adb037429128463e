package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
	"github.com/dashhub/productivity-service/internal/validator"
)

type todoService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

// NewTodoService creates the todo service
func NewTodoService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) TodoService {
	return &todoService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *todoService) Create(ctx context.Context, userID string, req *validator.TodoCreateRequest) (*models.Todo, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		UserID:    userID,
		Task:      req.Task,
		Completed: req.Completed,
	}
	if err := s.repo.Todo().Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) List(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.repo.Todo().GetByUserNewestFirst(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Update toggles the completed flag. The record must belong to the caller;
// an owner mismatch is reported the same way as an absent record so the
// endpoint does not leak which ids exist.
func (s *todoService) Update(ctx context.Context, userID, todoID string, req *validator.TodoUpdateRequest) (*models.Todo, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Completed = *req.Completed
	if err := s.repo.Todo().Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.getOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.repo.Todo().Delete(ctx, todoID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *todoService) getOwned(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	todo, err := s.repo.Todo().GetByID(ctx, todoID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if todo.UserID != userID {
		s.logger.Warn("ownership check rejected todo access", "todo_id", todoID, "user_id", userID)
		return nil, ErrNotOwner
	}
	return todo, nil
}
