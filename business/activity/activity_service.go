package activity

import (
	"context"
	"errors"
	"fmt"
	"shopsight/domain"
	"shopsight/pkg/logger"
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ActivityRepository contract interface
type ActivityRepository interface {
	Create(ctx context.Context, event *domain.ActivityEvent) error
	FindByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.ActivityEvent, error)
	CountByProduct(ctx context.Context, productID uint64) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityService struct {
	activityRepo  ActivityRepository
	retentionDays int
}

func NewActivityService(activityRepo ActivityRepository, retentionDays int) *activityService {
	return &activityService{
		activityRepo:  activityRepo,
		retentionDays: retentionDays,
	}
}

var validActions = map[string]bool{
	domain.ActionView:     true,
	domain.ActionStay:     true,
	domain.ActionPurchase: true,
}

func (s *activityService) Record(ctx context.Context, event *domain.ActivityEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if event.UserID == 0 {
		logger.Error("Invalid activity event: user id is required")
		return errors.New("user id is required")
	}

	if !validActions[event.Action] {
		logger.Error("Invalid activity event action", "action", event.Action)
		return errors.New("invalid action")
	}

	if event.Action == domain.ActionStay && event.DurationSeconds == nil {
		logger.Error("Invalid stay event: duration is required")
		return errors.New("duration is required for stay events")
	}

	if event.DurationSeconds != nil && *event.DurationSeconds < 0 {
		logger.Error("Invalid activity event: negative duration")
		return errors.New("duration cannot be negative")
	}

	if err := s.activityRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to record activity event", err)
		return fmt.Errorf("failed to record activity event: %w", err)
	}

	EventsRecordedTotal.WithLabelValues(event.Action).Inc()

	return nil
}

func (s *activityService) ListByUser(ctx context.Context, userID uint, page, limit int) ([]domain.ActivityEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := (page - 1) * limit

	return s.activityRepo.FindByUser(ctx, userID, offset, limit)
}

func (s *activityService) CountByProduct(ctx context.Context, productID uint64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	if productID == 0 {
		return 0, errors.New("invalid product id")
	}

	return s.activityRepo.CountByProduct(ctx, productID)
}

// Purge deletes events older than the configured retention window and
// reports how many rows went away.
func (s *activityService) Purge(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.activityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to purge activity events", err)
		return 0, err
	}

	logger.Info("activity events purged", "deleted", deleted, "cutoff", cutoff)

	return deleted, nil
}
