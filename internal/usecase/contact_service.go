package usecase

import (
	"context"
	"strings"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ContactService relays the public contact and newsletter forms by email.
// Nothing is persisted.
type ContactService struct {
	mailer  Mailer
	inbox   string
	logger  *zap.Logger
	newCode func() (string, error)
}

func NewContactService(mailer Mailer, inbox string, logger *zap.Logger) *ContactService {
	return &ContactService{
		mailer: mailer,
		inbox:  inbox,
		logger: logger,
		newCode: func() (string, error) {
			return gonanoid.Generate(referenceAlphabet, 8)
		},
	}
}

// Send mails the inbox (Reply-To the sender) and then a confirmation to the sender
func (s *ContactService) Send(ctx context.Context, req *entity.ContactRequest) (*entity.ContactReceipt, error) {
	if s.inbox == "" {
		return nil, appError(domainErrors.ErrMailDisabled, "")
	}

	code, err := s.newCode()
	if err != nil {
		return nil, apperrors.Internal("failed to generate reference", err)
	}
	reference := "TW-" + code

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Contato pelo site"
	}
	data := map[string]string{
		"reference": reference,
		"name":      strings.TrimSpace(req.Name),
		"email":     normalizeEmail(req.Email),
		"phone":     strings.TrimSpace(req.Phone),
		"company":   strings.TrimSpace(req.Company),
		"subject":   subject,
		"message":   strings.TrimSpace(req.Message),
	}

	if err := s.mailer.Send(ctx, &entity.EmailMessage{
		To:       s.inbox,
		ReplyTo:  data["email"],
		Template: entity.TemplateContactInbox,
		Data:     data,
	}); err != nil {
		return nil, s.mailError(err, "contact inbox")
	}

	// the inbox already has the message; a failed confirmation is not an error for the caller
	if err := s.mailer.Send(ctx, &entity.EmailMessage{
		To:       data["email"],
		Template: entity.TemplateContactConfirmation,
		Data:     data,
	}); err != nil {
		s.logger.Warn("Failed to send contact confirmation",
			zap.String("reference", reference),
			zap.Error(err))
	}

	s.logger.Info("Contact message sent", zap.String("reference", reference))
	return &entity.ContactReceipt{Reference: reference}, nil
}

func (s *ContactService) Newsletter(ctx context.Context, email string) error {
	if s.inbox == "" {
		return appError(domainErrors.ErrMailDisabled, "")
	}
	data := map[string]string{"email": normalizeEmail(email)}

	if err := s.mailer.Send(ctx, &entity.EmailMessage{
		To:       s.inbox,
		ReplyTo:  data["email"],
		Template: entity.TemplateNewsletterInbox,
		Data:     data,
	}); err != nil {
		return s.mailError(err, "newsletter inbox")
	}

	if err := s.mailer.Send(ctx, &entity.EmailMessage{
		To:       data["email"],
		Template: entity.TemplateNewsletterConfirmation,
		Data:     data,
	}); err != nil {
		s.logger.Warn("Failed to send newsletter confirmation", zap.Error(err))
	}
	return nil
}

func (s *ContactService) mailError(err error, what string) error {
	if apperrors.Is(err, domainErrors.ErrMailDisabled) {
		return appError(err, "")
	}
	s.logger.Error("Failed to send email", zap.String("email", what), zap.Error(err))
	return apperrors.Upstream("failed to send email", err)
}
