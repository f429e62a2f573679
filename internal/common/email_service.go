package common

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"startup-hub/backend/internal/config"
)

// EmailSender delivers confirmation and password-recovery codes. Callers
// treat sends as fire-and-forget; a failed mail is logged, not retried.
type EmailSender interface {
	SendConfirmationCode(ctx context.Context, email string, code string) error
	SendPasswordChangeCode(ctx context.Context, email string, code string) error
}

// SMTPMailer is the plain SMTP implementation (Mailpit locally, a relay in
// production).
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

var _ EmailSender = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTP.Host,
		port: cfg.SMTP.Port,
		user: cfg.SMTP.User,
		pass: cfg.SMTP.Pass,
		from: cfg.SMTP.From,
	}
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, email string, code string) error {
	subject := "Your confirmation code"
	body := fmt.Sprintf("Your confirmation code is: %s\n\nThe code expires in 15 minutes.\n", code)
	return m.send(email, subject, body)
}

func (m *SMTPMailer) SendPasswordChangeCode(ctx context.Context, email string, code string) error {
	subject := "Password change code"
	body := fmt.Sprintf("Use this code to change your password: %s\n\nThe code expires in 15 minutes.\nIf you did not request this, ignore this email.\n", code)
	return m.send(email, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
