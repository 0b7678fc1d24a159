package email

import (
	"context"
	"fmt"

	"github.com/JoshCentner/ShadowMatchPro/internal/model"
)

// Notifier sends the lifecycle notification emails. It satisfies
// service.Notifier.
type Notifier struct {
	service *Service
}

func NewNotifier(service *Service) *Notifier {
	return &Notifier{service: service}
}

// ApplicationReceived tells an opportunity creator that someone applied.
func (n *Notifier) ApplicationReceived(ctx context.Context, creator, applicant model.User, opp model.Opportunity) error {
	return n.service.SendEmail(EmailData{
		To:           creator.Email,
		Subject:      fmt.Sprintf("New application for %q", opp.Title),
		TemplateName: "application_received",
		TemplateData: map[string]any{
			"CreatorName":   creator.Name,
			"ApplicantName": applicant.Name,
			"Title":         opp.Title,
		},
	})
}

// ApplicationAccepted tells an applicant their application was accepted.
func (n *Notifier) ApplicationAccepted(ctx context.Context, applicant model.User, opp model.Opportunity) error {
	return n.service.SendEmail(EmailData{
		To:           applicant.Email,
		Subject:      fmt.Sprintf("You're in: %q", opp.Title),
		TemplateName: "application_accepted",
		TemplateData: map[string]any{
			"ApplicantName": applicant.Name,
			"Title":         opp.Title,
		},
	})
}
