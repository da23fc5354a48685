package mail

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
)

// emailTemplate pairs a plain-text subject with an HTML body. Both are
// rendered against the message data map, so keys are referenced as {{.name}}.
type emailTemplate struct {
	subject *texttemplate.Template
	body    *template.Template
}

const layoutHead = `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta http-equiv="Content-Type" content="text/html; charset=UTF-8" /></head>
<body style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; background-color: #f7f9fc;">
<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
<tr><td style="padding: 24px 30px; background-color: #1d4ed8; color: #ffffff; font-size: 22px; font-weight: bold;">TicketWise</td></tr>
<tr><td style="padding: 30px; color: #333333; font-size: 15px; line-height: 1.6;">`

const layoutFoot = `</td></tr>
<tr><td align="center" style="padding: 16px; color: #666666; font-size: 12px; background-color: #f0f2fa;">TicketWise - Gestão de chamados</td></tr>
</table>
</body>
</html>`

var templateSources = map[string][2]string{
	entity.TemplateClaimAccount: {
		`Ative sua conta TicketWise`,
		`<p>Olá, <strong>{{.name}}</strong>!</p>
<p>Seu pagamento foi confirmado e sua conta TicketWise foi criada.</p>
<p>Para acessar, defina sua senha pelo link abaixo:</p>
<p><a href="{{.claim_url}}" style="color: #1d4ed8;">Definir minha senha</a></p>
<p>O link expira em {{.expires_at}}.</p>`,
	},
	entity.TemplateWelcome: {
		`Bem-vindo ao TicketWise, {{.name}}`,
		`<p>Olá, <strong>{{.name}}</strong>!</p>
<p>Sua conta TicketWise está pronta.</p>
<p><a href="{{.login_url}}" style="color: #1d4ed8;">Acessar o TicketWise</a></p>`,
	},
	entity.TemplatePaymentFailed: {
		`Falha no pagamento da sua assinatura TicketWise`,
		`<p>Olá{{if .name}}, <strong>{{.name}}</strong>{{end}}!</p>
<p>Não conseguimos processar o pagamento de <strong>{{.amount}} {{.currency}}</strong> da sua assinatura.</p>
<p>Atualize sua forma de pagamento para evitar a suspensão do serviço:</p>
<p><a href="{{.billing_url}}" style="color: #1d4ed8;">Atualizar forma de pagamento</a></p>`,
	},
	entity.TemplateContactInbox: {
		`[{{.reference}}] {{.subject}}`,
		`<p><strong>Nova mensagem pelo site</strong> ({{.reference}})</p>
<p>Nome: {{.name}}<br/>E-mail: {{.email}}{{if .phone}}<br/>Telefone: {{.phone}}{{end}}{{if .company}}<br/>Empresa: {{.company}}{{end}}</p>
<p style="white-space: pre-wrap;">{{.message}}</p>`,
	},
	entity.TemplateContactConfirmation: {
		`Recebemos sua mensagem ({{.reference}})`,
		`<p>Olá, <strong>{{.name}}</strong>!</p>
<p>Recebemos sua mensagem e retornaremos em breve.</p>
<p>Protocolo: <strong>{{.reference}}</strong></p>
<p style="white-space: pre-wrap; color: #666666;">{{.message}}</p>`,
	},
	entity.TemplateNewsletterInbox: {
		`Nova inscrição na newsletter`,
		`<p>Novo inscrito na newsletter: <strong>{{.email}}</strong></p>`,
	},
	entity.TemplateNewsletterConfirmation: {
		`Inscrição confirmada na newsletter TicketWise`,
		`<p>Olá!</p>
<p>Sua inscrição na newsletter TicketWise foi confirmada.</p>`,
	},
}

func parseTemplates() (map[string]*emailTemplate, error) {
	parsed := make(map[string]*emailTemplate, len(templateSources))
	for name, src := range templateSources {
		subject, err := texttemplate.New(name + ".subject").Option("missingkey=zero").Parse(src[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject of %s: %w", name, err)
		}
		body, err := template.New(name + ".body").Option("missingkey=zero").Parse(layoutHead + src[1] + layoutFoot)
		if err != nil {
			return nil, fmt.Errorf("failed to parse body of %s: %w", name, err)
		}
		parsed[name] = &emailTemplate{subject: subject, body: body}
	}
	return parsed, nil
}

// Renderer turns an EmailMessage into subject and HTML body
type Renderer struct {
	templates map[string]*emailTemplate
}

func NewRenderer() (*Renderer, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named template
func (r *Renderer) Render(msg *entity.EmailMessage) (subject, body string, err error) {
	tmpl, ok := r.templates[msg.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", msg.Template)
	}

	var buf bytes.Buffer
	if err := tmpl.subject.Execute(&buf, msg.Data); err != nil {
		return "", "", fmt.Errorf("failed to render subject of %s: %w", msg.Template, err)
	}
	subject = buf.String()

	buf.Reset()
	if err := tmpl.body.Execute(&buf, msg.Data); err != nil {
		return "", "", fmt.Errorf("failed to render body of %s: %w", msg.Template, err)
	}
	return subject, buf.String(), nil
}
