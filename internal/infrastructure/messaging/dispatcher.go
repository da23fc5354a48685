package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/usecase"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/messaging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var emailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notification_emails_total",
	Help: "Transactional emails handed to the mailer, by template and outcome.",
}, []string{"template", "outcome"})

// Dispatcher delivers queued notifications through the mailer
type Dispatcher struct {
	mailer usecase.Mailer
	logger *zap.Logger
}

func NewDispatcher(mailer usecase.Mailer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, logger: logger}
}

// Deliver sends one notification. Non-email notifications are ignored.
func (d *Dispatcher) Deliver(ctx context.Context, n *entity.Notification) error {
	if n.Type != entity.TypeEmail {
		d.logger.Warn("Ignoring notification of unsupported type",
			zap.String("notification_id", n.ID),
			zap.String("type", string(n.Type)))
		return nil
	}

	err := d.mailer.Send(ctx, &entity.EmailMessage{
		To:       n.To,
		Template: n.Template,
		Data:     n.Data,
	})
	if err != nil {
		emailsTotal.WithLabelValues(n.Template, "failed").Inc()
		d.logger.Error("Failed to deliver notification",
			zap.String("notification_id", n.ID),
			zap.String("template", n.Template),
			zap.Error(err))
		return err
	}
	emailsTotal.WithLabelValues(n.Template, "sent").Inc()
	return nil
}

// Run consumes the channel until ctx is cancelled
func (d *Dispatcher) Run(ctx context.Context, client messaging.RedisClient, channel string) error {
	if channel == "" {
		channel = EmailChannel
	}
	messages, err := client.Subscribe(ctx, channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	d.logger.Info("Notification dispatcher started", zap.String("channel", channel))
	for msg := range messages {
		var n entity.Notification
		if err := json.Unmarshal(msg.Payload, &n); err != nil {
			d.logger.Error("Discarding malformed notification",
				zap.String("channel", msg.Channel),
				zap.Error(err))
			continue
		}
		_ = d.Deliver(ctx, &n)
	}
	d.logger.Info("Notification dispatcher stopped")
	return nil
}

// DirectPublisher delivers notifications in a background goroutine instead
// of going through Redis
type DirectPublisher struct {
	dispatcher *Dispatcher
	wg         sync.WaitGroup
}

func NewDirectPublisher(dispatcher *Dispatcher) *DirectPublisher {
	return &DirectPublisher{dispatcher: dispatcher}
}

func (p *DirectPublisher) PublishNotification(ctx context.Context, notification *entity.Notification) error {
	if notification == nil {
		return fmt.Errorf("notification is nil")
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_ = p.dispatcher.Deliver(context.WithoutCancel(ctx), notification)
	}()
	return nil
}

// Wait blocks until every in-flight delivery has finished
func (p *DirectPublisher) Wait() {
	p.wg.Wait()
}
