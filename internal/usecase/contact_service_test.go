package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMailer struct {
	sent []*entity.EmailMessage
	// failOn makes Send fail for the given template
	failOn map[string]error
}

func (m *stubMailer) Send(_ context.Context, msg *entity.EmailMessage) error {
	if err := m.failOn[msg.Template]; err != nil {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestContactService_Send(t *testing.T) {
	ctx := context.Background()
	req := &entity.ContactRequest{
		Name:    "Júlia",
		Email:   "Julia@Example.com",
		Message: "Gostaria de uma demonstração.",
	}

	t.Run("mails inbox then sender", func(t *testing.T) {
		mailer := &stubMailer{}
		svc := NewContactService(mailer, "contato@ticketwise.com.br", zap.NewNop())
		svc.newCode = func() (string, error) { return "ABCD2345", nil }

		receipt, err := svc.Send(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "TW-ABCD2345", receipt.Reference)

		require.Len(t, mailer.sent, 2)
		inbox := mailer.sent[0]
		assert.Equal(t, entity.TemplateContactInbox, inbox.Template)
		assert.Equal(t, "contato@ticketwise.com.br", inbox.To)
		assert.Equal(t, "julia@example.com", inbox.ReplyTo)
		assert.Equal(t, "Contato pelo site", inbox.Data["subject"])

		confirmation := mailer.sent[1]
		assert.Equal(t, entity.TemplateContactConfirmation, confirmation.Template)
		assert.Equal(t, "julia@example.com", confirmation.To)
	})

	t.Run("confirmation failure is not reported", func(t *testing.T) {
		mailer := &stubMailer{failOn: map[string]error{entity.TemplateContactConfirmation: errors.New("smtp timeout")}}
		svc := NewContactService(mailer, "contato@ticketwise.com.br", zap.NewNop())

		receipt, err := svc.Send(ctx, req)
		require.NoError(t, err)
		assert.Regexp(t, `^TW-[A-Z2-9]{8}$`, receipt.Reference)
	})

	t.Run("inbox failure", func(t *testing.T) {
		mailer := &stubMailer{failOn: map[string]error{entity.TemplateContactInbox: errors.New("smtp down")}}
		svc := NewContactService(mailer, "contato@ticketwise.com.br", zap.NewNop())

		_, err := svc.Send(ctx, req)
		assert.Equal(t, apperrors.ErrUpstream, apperrors.CodeOf(err))
	})

	t.Run("mail disabled", func(t *testing.T) {
		svc := NewContactService(&stubMailer{}, "", zap.NewNop())
		_, err := svc.Send(ctx, req)
		assert.Equal(t, apperrors.ErrNotImplemented, apperrors.CodeOf(err))
	})

	t.Run("disabled mailer", func(t *testing.T) {
		mailer := &stubMailer{failOn: map[string]error{entity.TemplateContactInbox: domainErrors.ErrMailDisabled}}
		svc := NewContactService(mailer, "contato@ticketwise.com.br", zap.NewNop())
		_, err := svc.Send(ctx, req)
		assert.Equal(t, apperrors.ErrNotImplemented, apperrors.CodeOf(err))
	})
}

func TestContactService_Newsletter(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewContactService(mailer, "contato@ticketwise.com.br", zap.NewNop())

	require.NoError(t, svc.Newsletter(context.Background(), " Leitor@Example.com "))
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, entity.TemplateNewsletterInbox, mailer.sent[0].Template)
	assert.Equal(t, "leitor@example.com", mailer.sent[1].To)
}
