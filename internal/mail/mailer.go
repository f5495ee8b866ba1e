package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/triviapro/user-service/internal/config"
)

// Mailer sends templated transactional email over SMTP
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a new mailer
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendVerificationEmail sends the email-verification link
func (m *Mailer) SendVerificationEmail(ctx context.Context, to, url string) error {
	return m.send(ctx, to, "Verify Your Email - Trivia Pro", verificationTemplate, map[string]string{
		"URL":   url,
		"Email": to,
	})
}

// SendPasswordReset sends the password-reset link
func (m *Mailer) SendPasswordReset(ctx context.Context, to, url string) error {
	return m.send(ctx, to, "Reset Your Password - Trivia Pro", passwordResetTemplate, map[string]string{
		"URL":   url,
		"Email": to,
	})
}

// SendWelcome sends the welcome message
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Welcome to Trivia Pro!", welcomeTemplate, map[string]string{
		"Name":  name,
		"Email": to,
	})
}

func (m *Mailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data map[string]string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(m.cfg.Address(), auth, m.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
