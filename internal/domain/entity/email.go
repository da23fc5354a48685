package entity

// Contact form templates
const (
	TemplateContactInbox           = "contact_inbox"
	TemplateContactConfirmation    = "contact_confirmation"
	TemplateNewsletterInbox        = "newsletter_inbox"
	TemplateNewsletterConfirmation = "newsletter_confirmation"
)

// EmailMessage is a templated email ready for the mailer
type EmailMessage struct {
	To       string
	ReplyTo  string
	Template string
	Data     map[string]string
}

// ContactRequest is the public contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Company string `json:"company" validate:"omitempty,max=255"`
	Subject string `json:"subject" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ContactReceipt is returned once both emails were handed to SMTP
type ContactReceipt struct {
	Reference string `json:"reference"`
}
