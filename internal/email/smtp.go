package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// sendWithSMTP sends an email through the configured SMTP relay.
func (s *Service) sendWithSMTP(data EmailData, htmlContent, textContent string) error {
	addr := s.config.SMTP.Host + ":" + s.config.SMTP.Port

	var auth smtp.Auth
	if s.config.SMTP.Username != "" {
		auth = smtp.PlainAuth("", s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Host)
	}

	var msg strings.Builder
	boundary := "shadowmatch-alt"
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", data.FromName, data.From)
	fmt.Fprintf(&msg, "To: %s\r\n", data.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", data.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, textContent)
	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, htmlContent)
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	if err := smtp.SendMail(addr, auth, data.From, []string{data.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}
