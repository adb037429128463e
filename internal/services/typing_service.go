package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/dashhub/productivity-service/internal/events"
	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/repositories"
	"github.com/dashhub/productivity-service/internal/validator"
)

type typingService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewTypingService creates the typing stats aggregator
func NewTypingService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) TypingService {
	return &typingService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// Submit persists a new sample and recomputes the user's aggregate stats
// from the full history.
//
// The sample insert and the aggregate update are two independent writes
// with no lock or conditional update between the read-all and the write:
// two concurrent submissions for the same user can race and the aggregate
// persisted last reflects only the sample set its own read observed.
// Likewise, a failure after the insert leaves the sample durably stored
// with stale aggregates. Both behaviors are accepted semantics. Cost of
// the recompute grows linearly with the user's total history.
func (s *typingService) Submit(ctx context.Context, user *models.User, req *validator.SubmitTypingTestRequest) (*models.SubmitTypingTestResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.logger.Info("submitting typing test", "user_id", user.ID, "wpm", *req.WPM)

	test := &models.TypingTest{
		UserID:   user.ID,
		WPM:      *req.WPM,
		Accuracy: *req.Accuracy,
		Mistakes: *req.Mistakes,
		Duration: *req.Duration,
	}
	if err := s.repo.TypingTest().Create(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to persist typing test: %w", err)
	}

	allTests, err := s.repo.TypingTest().GetByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read typing history: %w", err)
	}

	maxSpeed, avgSpeed := aggregateSpeeds(allTests)

	if err := s.repo.User().UpdateTypingStats(ctx, user.ID, maxSpeed, avgSpeed); err != nil {
		return nil, fmt.Errorf("failed to update typing stats: %w", err)
	}

	s.publishSubmitEvents(ctx, user, test, maxSpeed, avgSpeed)

	return &models.SubmitTypingTestResponse{
		Test:     test,
		MaxSpeed: maxSpeed,
		AvgSpeed: avgSpeed,
	}, nil
}

// GetStats returns the stored aggregates together with the full
// newest-first history. The user record passed in is the fresh
// per-request read, so its aggregate fields are current.
func (s *typingService) GetStats(ctx context.Context, user *models.User) (*models.TypingStatsResponse, error) {
	tests, err := s.repo.TypingTest().GetByUserNewestFirst(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read typing history: %w", err)
	}

	var lastTest *models.TypingTest
	if len(tests) > 0 {
		lastTest = &tests[0]
	}

	return &models.TypingStatsResponse{
		LastTest:           lastTest,
		MaxTypingSpeed:     user.MaxTypingSpeed,
		AverageTypingSpeed: user.AverageTypingSpeed,
		AllTests:           tests,
	}, nil
}

// ExportHistory renders the caller's full typing history as an xlsx workbook
func (s *typingService) ExportHistory(ctx context.Context, user *models.User) (*excelize.File, error) {
	tests, err := s.repo.TypingTest().GetByUserNewestFirst(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read typing history: %w", err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Timestamp", "WPM", "Accuracy", "Mistakes", "Duration (s)"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build export header: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for row, test := range tests {
		values := []interface{}{
			test.Timestamp.Format("2006-01-02 15:04:05"),
			test.WPM,
			test.Accuracy,
			test.Mistakes,
			test.Duration,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build export cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write export cell: %w", err)
			}
		}
	}

	return f, nil
}

// aggregateSpeeds computes the max and rounded mean wpm over the full
// sample set. Both are 0 when the set is empty.
func aggregateSpeeds(tests []models.TypingTest) (maxSpeed, avgSpeed float64) {
	if len(tests) == 0 {
		return 0, 0
	}

	var sum float64
	for _, t := range tests {
		if t.WPM > maxSpeed {
			maxSpeed = t.WPM
		}
		sum += t.WPM
	}
	avgSpeed = math.Round(sum / float64(len(tests)))
	return maxSpeed, avgSpeed
}

// publishSubmitEvents emits domain events for the submission. Publish
// failures are logged and never fail the request.
func (s *typingService) publishSubmitEvents(ctx context.Context, user *models.User, test *models.TypingTest, maxSpeed, avgSpeed float64) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(ctx, events.TypeTestSubmitted, events.TestSubmittedEvent{
		UserID:   user.ID,
		TestID:   test.ID,
		WPM:      test.WPM,
		MaxSpeed: maxSpeed,
		AvgSpeed: avgSpeed,
	})
	if err != nil {
		s.logger.Warn("failed to publish test submitted event", "error", err, "user_id", user.ID)
	}

	if maxSpeed > user.MaxTypingSpeed {
		err := s.publisher.Publish(ctx, events.TypePersonalBest, events.PersonalBestEvent{
			UserID:      user.ID,
			TestID:      test.ID,
			NewMaxSpeed: maxSpeed,
			OldMaxSpeed: user.MaxTypingSpeed,
		})
		if err != nil {
			s.logger.Warn("failed to publish personal best event", "error", err, "user_id", user.ID)
		}
	}
}
