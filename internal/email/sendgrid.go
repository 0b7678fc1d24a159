package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendWithSendgrid delivers the rendered message through the Sendgrid API.
func (s *Service) sendWithSendgrid(data EmailData, htmlContent, textContent string) error {
	from := mail.NewEmail(data.FromName, data.From)
	to := mail.NewEmail("", data.To)
	message := mail.NewSingleEmail(from, data.Subject, to, textContent, htmlContent)

	response, err := s.sendgridClient.Send(message)
	if err != nil {
		return fmt.Errorf("sending via Sendgrid: %w", err)
	}

	// Sendgrid acknowledges accepted mail with 202.
	if response.StatusCode != 202 {
		return fmt.Errorf("Sendgrid rejected the message: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
