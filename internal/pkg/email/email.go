// Package email delivers notification mail over SMTP. Delivery is always
// best-effort from the caller's perspective: the redemption and transfer flows
// log send failures and never fail the primary operation because of one.
package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Mailer defines the outbound mail capability consumed by the services.
type Mailer interface {
	Send(to, subject, text, html string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPMailer implements Mailer over net/smtp. When credentials are not
// configured it logs the message instead of sending, matching the simulation
// behavior used in development.
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// Send delivers a message with a text body and an optional HTML body.
func (m *SMTPMailer) Send(to, subject, text, html string) error {
	if m.config.Host == "" || m.config.Username == "" || m.config.Password == "" {
		m.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Bool("hasHtml", html != "").
			Msg("SMTP not configured - mail simulated")
		return nil
	}

	body := text
	contentType := "text/plain; charset=UTF-8"
	if html != "" {
		body = html
		contentType = "text/html; charset=UTF-8"
	}

	headers := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n",
		m.config.FromName, m.config.FromEmail, to, subject, contentType)
	message := []byte(headers + body)

	addr := m.config.Host + ":" + strconv.Itoa(m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if m.config.UseTLS {
		return m.sendTLS(addr, auth, to, message)
	}

	if err := smtp.SendMail(addr, auth, m.config.FromEmail, []string{to}, message); err != nil {
		m.logger.Error().Err(err).Str("server", addr).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) sendTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	tlsConfig := &tls.Config{ServerName: m.config.Host}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		m.logger.Error().Err(err).Str("server", addr).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}
