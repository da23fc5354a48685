package usecase

import (
	"context"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	"go.uber.org/zap"
)

// EventReplayer reprocesses a stored webhook event
type EventReplayer interface {
	ReplayEvent(ctx context.Context, record *model.StripeWebhookEvent) error
}

// WebhookRetrier replays failed webhook events once their backoff has elapsed
type WebhookRetrier struct {
	events      repository.WebhookEventRepository
	replayer    EventReplayer
	interval    time.Duration
	maxAttempts int
	batch       int
	logger      *zap.Logger
}

func NewWebhookRetrier(
	events repository.WebhookEventRepository,
	replayer EventReplayer,
	interval time.Duration,
	maxAttempts, batch int,
	logger *zap.Logger,
) *WebhookRetrier {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 8
	}
	if batch <= 0 {
		batch = 50
	}
	return &WebhookRetrier{
		events:      events,
		replayer:    replayer,
		interval:    interval,
		maxAttempts: maxAttempts,
		batch:       batch,
		logger:      logger.Named("webhook-retrier"),
	}
}

// Run blocks until ctx is done
func (r *WebhookRetrier) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Webhook retrier started",
		zap.Duration("interval", r.interval),
		zap.Int("max_attempts", r.maxAttempts))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Webhook retrier stopped")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				r.logger.Error("Webhook retry pass failed", zap.Error(err))
			}
		}
	}
}

// RunOnce replays one batch and returns how many events succeeded
func (r *WebhookRetrier) RunOnce(ctx context.Context) (int, error) {
	records, err := r.events.ListRetryable(ctx, r.maxAttempts, r.batch)
	if err != nil {
		return 0, err
	}

	succeeded := 0
	for _, record := range records {
		if ctx.Err() != nil {
			break
		}
		if err := r.replayer.ReplayEvent(ctx, record); err != nil {
			r.logger.Warn("Webhook replay failed",
				zap.String("event_id", record.EventID),
				zap.Int("attempts", record.Attempts+1),
				zap.Error(err))
			continue
		}
		succeeded++
	}

	if len(records) > 0 {
		r.logger.Info("Webhook retry pass finished",
			zap.Int("candidates", len(records)),
			zap.Int("succeeded", succeeded))
	}
	return succeeded, nil
}
