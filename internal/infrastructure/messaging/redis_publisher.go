package messaging

import (
	"context"
	"fmt"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/usecase"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/messaging"
)

// EmailChannel carries email notifications to the dispatcher
const EmailChannel = "notifications:email"

// redisNotificationPublisher publishes notifications on a Redis channel
type redisNotificationPublisher struct {
	redisClient messaging.RedisClient
	channel     string
}

// NewRedisNotificationPublisher creates a Redis backed publisher
func NewRedisNotificationPublisher(client messaging.RedisClient, channel string) usecase.NotificationPublisher {
	if channel == "" {
		channel = EmailChannel
	}
	return &redisNotificationPublisher{
		redisClient: client,
		channel:     channel,
	}
}

// PublishNotification publishes the notification as JSON
func (p *redisNotificationPublisher) PublishNotification(ctx context.Context, notification *entity.Notification) error {
	if notification == nil {
		return fmt.Errorf("notification is nil")
	}

	if err := p.redisClient.Publish(ctx, p.channel, notification); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
