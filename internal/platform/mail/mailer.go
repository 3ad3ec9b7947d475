// Package mail provides the SMTP notification sender.
package mail

import (
	"fmt"
	"net"
	"net/smtp"
	"os"
)

// RateLimiter caps the frequency of outbound sends.
type RateLimiter interface {
	WaitIfNeeded()
}

// Mailer sends plain-text emails over SMTP. Any delivery failure is
// terminal for the current request; retries are left to the caller.
type Mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	limiter  RateLimiter
}

// NewMailer creates a Mailer from the SMTP_* environment variables.
// Configuration is read once at construction, not per send.
func NewMailer(limiter RateLimiter) *Mailer {
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		from:     os.Getenv("FROM_EMAIL"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		limiter:  limiter,
	}
}

// Send delivers a single message to the recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" || m.port == "" || m.from == "" {
		return fmt.Errorf("smtp is not configured")
	}

	if m.limiter != nil {
		m.limiter.WaitIfNeeded()
	}

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body)

	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}
