package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	gomail "github.com/wneessen/go-mail"

	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/utils"
)

// EmailMessage is a single outgoing HTML email.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer sends email through the configured provider.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// NewMailer returns the mailer selected by mail.provider.
func NewMailer(cfg *config.AppConfig) (Mailer, error) {
	m := cfg.Mail
	switch m.Provider {
	case constants.MailProviderSMTP:
		return NewSMTPMailer(&m), nil
	case constants.MailProviderSendGrid:
		if m.SendGridAPIKey == "" {
			return nil, errors.New("sendgrid api key is not set")
		}
		return NewSendGridMailer(&m), nil
	case constants.MailProviderLog, "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", m.Provider)
	}
}

// SMTPMailer delivers mail through an authenticated SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

// NewSMTPMailer creates a mailer for the relay described by settings.
func NewSMTPMailer(settings *config.MailSettings) *SMTPMailer {
	from := settings.FromAddress
	if from == "" {
		from = settings.Username
	}
	return &SMTPMailer{
		host:     settings.Host,
		port:     settings.Port,
		username: settings.Username,
		password: settings.Password,
		from:     from,
		fromName: settings.FromName,
	}
}

// Send dials the relay and delivers msg.
func (m *SMTPMailer) Send(ctx context.Context, msg *EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, constants.MailSendTimeout)
	defer cancel()

	message := gomail.NewMsg()
	if err := message.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.username),
			gomail.WithPassword(m.password),
		)
	}

	client, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	log.Info().
		Str("to", utils.MaskEmail(msg.To)).
		Str("subject", msg.Subject).
		Msg("Email sent via SMTP")

	return nil
}

// SendGridMailer delivers mail through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGridMailer creates a SendGrid mailer.
func NewSendGridMailer(settings *config.MailSettings) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   settings.SendGridAPIKey,
		from:     settings.FromAddress,
		fromName: settings.FromName,
	}
}

// Send posts msg to SendGrid. Any non-2xx answer is an error.
func (m *SendGridMailer) Send(ctx context.Context, msg *EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, constants.MailSendTimeout)
	defer cancel()

	from := sgmail.NewEmail(m.fromName, m.from)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, "", msg.HTMLBody)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected email: status %d", response.StatusCode)
	}

	log.Info().
		Int("status_code", response.StatusCode).
		Str("to", utils.MaskEmail(msg.To)).
		Msg("Email sent via SendGrid")

	return nil
}

// LogMailer writes messages to the log instead of sending them.
// It is the default outside production.
type LogMailer struct{}

// Send logs msg, including the body so reset links can be followed locally.
func (LogMailer) Send(_ context.Context, msg *EmailMessage) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.HTMLBody).
		Msg("Email not sent, log mailer in use")
	return nil
}

var resetEmailTemplate = template.Must(template.New("reset_email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>UPark Password Reset</h2>
  <p>Click the button below to confirm your password reset:</p>
  <a href="{{.Link}}" style="display: inline-block; background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Confirm Password Reset</a>
  <p>If you didn't request this change, please ignore this email.</p>
  <p>This link will expire in {{.Expiry}}.</p>
</div>
`))

// NewResetEmail builds the confirmation email for a pending reset.
func NewResetEmail(to, link, expiry string) (*EmailMessage, error) {
	var body bytes.Buffer
	data := struct {
		Link   string
		Expiry string
	}{Link: link, Expiry: expiry}

	if err := resetEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render reset email: %w", err)
	}

	return &EmailMessage{
		To:       to,
		Subject:  constants.ResetEmailSubject,
		HTMLBody: body.String(),
	}, nil
}
