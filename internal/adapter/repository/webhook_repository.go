package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type webhookRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewWebhookRepository creates a new webhook event repository
func NewWebhookRepository(db *gorm.DB, logger *zap.Logger) repository.WebhookEventRepository {
	return &webhookRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Record saves a webhook event; duplicates are ignored
func (r *webhookRepository) Record(ctx context.Context, event *model.StripeWebhookEvent) error {
	if event.Status == "" {
		event.Status = model.WebhookStatusReceived
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(event).Error
	if err != nil {
		r.logger.Error("Failed to save webhook event",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err))
		return fmt.Errorf("failed to save webhook event: %w", err)
	}
	return nil
}

// GetByEventID retrieves a webhook event by Stripe event id
func (r *webhookRepository) GetByEventID(ctx context.Context, eventID string) (*model.StripeWebhookEvent, error) {
	var event model.StripeWebhookEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get webhook event",
			zap.String("event_id", eventID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get webhook event: %w", err)
	}
	return &event, nil
}

// MarkProcessed marks a webhook event as processed
func (r *webhookRepository) MarkProcessed(ctx context.Context, eventID string) error {
	now := r.now()
	result := r.db.WithContext(ctx).
		Model(&model.StripeWebhookEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{
			"status":        model.WebhookStatusProcessed,
			"processed_at":  &now,
			"attempts":      gorm.Expr("attempts + 1"),
			"last_error":    nil,
			"next_retry_at": nil,
		})
	if result.Error != nil {
		r.logger.Error("Failed to mark webhook as processed",
			zap.String("event_id", eventID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark webhook as processed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("webhook event not found: %s", eventID)
	}
	return nil
}

// MarkFailed marks a webhook event as failed and schedules the next retry
func (r *webhookRepository) MarkFailed(ctx context.Context, eventID string, cause error) error {
	event, err := r.GetByEventID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("webhook event not found: %s", eventID)
	}

	attempts := event.Attempts + 1
	retryMinutes := 5 * (1 << attempts) // 10, 20, 40, ...
	if retryMinutes > 1440 {
		retryMinutes = 1440
	}
	nextRetry := r.now().Add(time.Duration(retryMinutes) * time.Minute)
	errorMsg := cause.Error()

	result := r.db.WithContext(ctx).
		Model(&model.StripeWebhookEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{
			"status":        model.WebhookStatusFailed,
			"attempts":      attempts,
			"last_error":    &errorMsg,
			"next_retry_at": &nextRetry,
		})
	if result.Error != nil {
		r.logger.Error("Failed to mark webhook as failed",
			zap.String("event_id", eventID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark webhook as failed: %w", result.Error)
	}
	return nil
}

// ListRetryable returns failed events that are due for another attempt
func (r *webhookRepository) ListRetryable(ctx context.Context, maxAttempts, limit int) ([]*model.StripeWebhookEvent, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND attempts < ? AND (next_retry_at IS NULL OR next_retry_at <= ?)",
			model.WebhookStatusFailed, maxAttempts, r.now()).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []*model.StripeWebhookEvent
	if err := query.Find(&events).Error; err != nil {
		r.logger.Error("Failed to list retryable webhook events", zap.Error(err))
		return nil, fmt.Errorf("failed to list retryable webhook events: %w", err)
	}
	return events, nil
}
