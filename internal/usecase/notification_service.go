package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationPublisher queues notifications for the dispatcher
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, notification *entity.Notification) error
}

// Mailer delivers a templated email
type Mailer interface {
	Send(ctx context.Context, msg *entity.EmailMessage) error
}

// NotificationService builds the transactional emails. Delivery failures are
// logged and never returned; billing and auth flows must not fail on email.
type NotificationService struct {
	publisher   NotificationPublisher
	frontendURL string
	logger      *zap.Logger
}

func NewNotificationService(publisher NotificationPublisher, frontendURL string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		publisher:   publisher,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

// SendClaimAccount mails the link a checkout-provisioned user follows to set a password
func (s *NotificationService) SendClaimAccount(ctx context.Context, user *model.User, token string, expiresAt time.Time) {
	link := s.frontendURL + "/claim-account?token=" + url.QueryEscape(token)
	s.publish(ctx, user.Email, entity.TemplateClaimAccount, map[string]string{
		"name":       user.Name,
		"claim_url":  link,
		"expires_at": expiresAt.UTC().Format(time.RFC1123),
	})
}

func (s *NotificationService) SendWelcome(ctx context.Context, user *model.User) {
	s.publish(ctx, user.Email, entity.TemplateWelcome, map[string]string{
		"name":      user.Name,
		"login_url": s.frontendURL + "/login",
	})
}

func (s *NotificationService) SendPaymentFailed(ctx context.Context, email, name string, amount int64, currency string) {
	s.publish(ctx, email, entity.TemplatePaymentFailed, map[string]string{
		"name":        name,
		"amount":      FormatAmount(amount, currency),
		"currency":    strings.ToUpper(currency),
		"billing_url": s.frontendURL + "/dashboard/subscription",
	})
}

func (s *NotificationService) publish(ctx context.Context, to, template string, data map[string]string) {
	if s == nil || s.publisher == nil {
		return
	}
	n, err := entity.NewEmailNotification(uuid.NewString(), to, template, data)
	if err != nil {
		s.logger.Warn("Skipping notification", zap.String("template", template), zap.Error(err))
		return
	}
	if err := s.publisher.PublishNotification(ctx, n); err != nil {
		s.logger.Error("Failed to publish notification",
			zap.String("notification_id", n.ID),
			zap.String("template", template),
			zap.Error(err))
		return
	}
	s.logger.Debug("Notification queued",
		zap.String("notification_id", n.ID),
		zap.String("template", template))
}
