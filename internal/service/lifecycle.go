// internal/service/lifecycle.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

// Notifier delivers best-effort lifecycle notifications. Failures are logged
// and never affect the API result.
type Notifier interface {
	ApplicationReceived(ctx context.Context, creator, applicant model.User, opp model.Opportunity) error
	ApplicationAccepted(ctx context.Context, applicant model.User, opp model.Opportunity) error
}

// LifecycleService enforces the opportunity/application state-transition
// rules: Open is the only state that accepts applications, a user applies at
// most once per opportunity, and an opportunity is accepted at most once,
// becoming Filled in the same step.
type LifecycleService struct {
	store    storage.Store
	notifier Notifier
}

func NewLifecycleService(store storage.Store, notifier Notifier) *LifecycleService {
	return &LifecycleService{
		store:    store,
		notifier: notifier,
	}
}

type ApplyInput struct {
	UserID        int     `json:"userId" validate:"required,gt=0"`
	OpportunityID int     `json:"opportunityId" validate:"required,gt=0"`
	Message       *string `json:"message"`
}

// Apply creates an application against an open opportunity. The duplicate
// pre-check produces the friendly error; the storage uniqueness constraint is
// what settles a concurrent race.
func (s *LifecycleService) Apply(ctx context.Context, input ApplyInput) (*model.Application, error) {
	detail, err := s.store.GetOpportunityByID(ctx, input.OpportunityID)
	if err != nil {
		return nil, err
	}

	if detail.Status != model.StatusOpen {
		return nil, domain.ErrOpportunityNotOpen
	}

	for _, existing := range detail.Applications {
		if existing.UserID == input.UserID {
			return nil, domain.ErrDuplicateApplication
		}
	}

	applicant, err := s.store.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	app := &model.Application{
		UserID:        input.UserID,
		OpportunityID: input.OpportunityID,
		Message:       input.Message,
	}
	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.notifyApplicationReceived(ctx, detail, *applicant)

	return app, nil
}

type AcceptInput struct {
	OpportunityID int `json:"opportunityId" validate:"required,gt=0"`
	UserID        int `json:"userId" validate:"required,gt=0"`
	// CallerID is the authenticated caller, when one is known. Creator-only
	// enforcement applies only in that case.
	CallerID *int `json:"-"`
}

// Accept records the single successful application for an opportunity and
// moves it to Filled. The two writes are applied atomically by the gateway.
func (s *LifecycleService) Accept(ctx context.Context, input AcceptInput) (*model.SuccessfulApplication, error) {
	detail, err := s.store.GetOpportunityByID(ctx, input.OpportunityID)
	if err != nil {
		return nil, err
	}

	if input.CallerID != nil && *input.CallerID != detail.CreatedByUserID {
		return nil, domain.ErrNotCreator
	}

	if detail.SuccessfulApplicant != nil {
		return nil, domain.ErrAlreadyAccepted
	}
	if detail.Status != model.StatusOpen {
		return nil, domain.ErrOpportunityNotOpen
	}

	applicant, err := s.store.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sa, err := s.store.AcceptApplication(ctx, input.OpportunityID, input.UserID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.ApplicationAccepted(ctx, *applicant, detail.Opportunity); err != nil {
			slog.WarnContext(ctx, "acceptance notification failed",
				"error", err, "opportunityID", input.OpportunityID, "userID", input.UserID)
		}
	}

	return sa, nil
}

type UpdateOpportunityInput struct {
	Update   storage.OpportunityUpdate
	CallerID *int
}

// UpdateOpportunity applies a partial update. A status change is validated
// against the lifecycle rules: Open may move to Closed or Filled, and both of
// those are terminal.
func (s *LifecycleService) UpdateOpportunity(ctx context.Context, id int, input UpdateOpportunityInput) (*model.Opportunity, error) {
	detail, err := s.store.GetOpportunityByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CallerID != nil && *input.CallerID != detail.CreatedByUserID {
		return nil, domain.ErrNotCreator
	}

	if err := validateOpportunityUpdate(detail.Status, input.Update); err != nil {
		return nil, err
	}

	return s.store.UpdateOpportunity(ctx, id, input.Update)
}

func validateOpportunityUpdate(current model.OpportunityStatus, update storage.OpportunityUpdate) error {
	if update.Format != nil && !update.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, *update.Format)
	}
	if update.DurationLimit != nil && !update.DurationLimit.Valid() {
		return fmt.Errorf("%w: unknown duration limit %q", domain.ErrInvalidInput, *update.DurationLimit)
	}
	if update.Status == nil {
		return nil
	}

	next := *update.Status
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, next)
	}
	if next == current {
		return nil
	}
	if current.Terminal() || next == model.StatusOpen {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, next)
	}
	return nil
}

type CreateOpportunityInput struct {
	Title            string                  `json:"title" validate:"required"`
	Description      string                  `json:"description" validate:"required"`
	Format           model.OpportunityFormat `json:"format" validate:"required"`
	DurationLimit    model.DurationLimit     `json:"durationLimit" validate:"required"`
	OrganisationID   int                     `json:"organisationId" validate:"required,gt=0"`
	CreatedByUserID  int                     `json:"createdByUserId" validate:"required,gt=0"`
	HostDetails      *string                 `json:"hostDetails"`
	LearningOutcomes *string                 `json:"learningOutcomes"`
	LearningAreaIDs  []int                   `json:"learningAreaIds"`
}

// CreateOpportunity creates an Open opportunity and links its learning-area
// tags. The creator must have completed their profile: an opportunity is
// always tied to the organisation of a known user.
func (s *LifecycleService) CreateOpportunity(ctx context.Context, input CreateOpportunityInput) (*model.Opportunity, error) {
	if !input.Format.Valid() {
		return nil, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, input.Format)
	}
	if !input.DurationLimit.Valid() {
		return nil, fmt.Errorf("%w: unknown duration limit %q", domain.ErrInvalidInput, input.DurationLimit)
	}

	creator, err := s.store.GetUserByID(ctx, input.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	if creator.OrganisationID == nil {
		return nil, domain.ErrNoOrganisation
	}

	if _, err := s.store.GetOrganisationByID(ctx, input.OrganisationID); err != nil {
		return nil, err
	}

	opp := &model.Opportunity{
		Title:            input.Title,
		Description:      input.Description,
		Format:           input.Format,
		DurationLimit:    input.DurationLimit,
		Status:           model.StatusOpen,
		OrganisationID:   input.OrganisationID,
		CreatedByUserID:  input.CreatedByUserID,
		HostDetails:      input.HostDetails,
		LearningOutcomes: input.LearningOutcomes,
	}
	if err := s.store.CreateOpportunity(ctx, opp); err != nil {
		return nil, err
	}

	for _, areaID := range input.LearningAreaIDs {
		if err := s.store.LinkLearningArea(ctx, opp.ID, areaID); err != nil {
			if errors.Is(err, domain.ErrLearningAreaNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("linking learning area %d: %w", areaID, err)
		}
	}

	return opp, nil
}

func (s *LifecycleService) notifyApplicationReceived(ctx context.Context, detail *model.OpportunityDetail, applicant model.User) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.ApplicationReceived(ctx, detail.Creator, applicant, detail.Opportunity); err != nil {
		slog.WarnContext(ctx, "application notification failed",
			"error", err, "opportunityID", detail.ID, "userID", applicant.ID)
	}
}
