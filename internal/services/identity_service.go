package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
)

type identityService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewIdentityService creates the identity resolver
func NewIdentityService(repo repositories.Repository, logger *slog.Logger) IdentityService {
	return &identityService{
		repo:   repo,
		logger: logger,
	}
}

// Resolve looks up the user by provider subject id and creates one on first
// sight. Display name and email are descriptive only; an existing user is
// returned unchanged even when the provider reports new profile values.
func (s *identityService) Resolve(ctx context.Context, identity ProviderIdentity) (*models.User, error) {
	if identity.SubjectID == "" {
		return nil, ErrIdentityIncomplete
	}

	var user *models.User
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		existing, err := tx.User().GetBySubjectID(ctx, identity.SubjectID)
		if err == nil {
			user = existing
			return nil
		}
		if !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to look up user: %w", err)
		}

		created := &models.User{
			SubjectID:   identity.SubjectID,
			DisplayName: identity.DisplayName,
			Email:       primaryEmail(identity.Emails),
		}
		if err := tx.User().Create(ctx, created); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		s.logger.Info("created user for new identity",
			"user_id", created.ID,
			"subject_id", identity.SubjectID)

		user = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("identity resolution failed: %w", err)
	}

	return user, nil
}

// CurrentUser performs the per-request fresh read of the session-bound user
func (s *identityService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

func primaryEmail(emails []string) string {
	if len(emails) == 0 {
		return ""
	}
	return emails[0]
}
