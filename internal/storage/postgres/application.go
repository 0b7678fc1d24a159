// internal/storage/postgres/application.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
)

func (s *Store) ListApplicationsByOpportunity(ctx context.Context, opportunityID int) ([]model.ApplicationWithUser, error) {
	var apps []model.Application
	if err := s.db.WithContext(ctx).Where("opportunity_id = ?", opportunityID).Order("id").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	enriched := make([]model.ApplicationWithUser, 0, len(apps))
	for _, app := range apps {
		user, err := s.GetUserByID(ctx, app.UserID)
		if err != nil {
			return nil, fmt.Errorf("enriching application %d: %w", app.ID, err)
		}
		enriched = append(enriched, model.ApplicationWithUser{Application: app, User: *user})
	}
	return enriched, nil
}

func (s *Store) ListApplicationsByUser(ctx context.Context, userID int) ([]model.ApplicationDetail, error) {
	var apps []model.Application
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("listing applications by user: %w", err)
	}

	details := make([]model.ApplicationDetail, 0, len(apps))
	for _, app := range apps {
		user, err := s.GetUserByID(ctx, app.UserID)
		if err != nil {
			return nil, fmt.Errorf("enriching application %d: %w", app.ID, err)
		}

		var opp model.Opportunity
		if err := s.db.WithContext(ctx).First(&opp, "id = ?", app.OpportunityID).Error; err != nil {
			return nil, fmt.Errorf("enriching application %d: %w", app.ID, err)
		}

		org, err := s.GetOrganisationByID(ctx, opp.OrganisationID)
		if err != nil {
			return nil, fmt.Errorf("enriching application %d: %w", app.ID, err)
		}

		details = append(details, model.ApplicationDetail{
			Application:  app,
			User:         *user,
			Opportunity:  opp,
			Organisation: *org,
		})
	}
	return details, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *model.Application) error {
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		// The unique index on (user_id, opportunity_id) settles concurrent
		// applies; the service-level pre-check only improves the message.
		if isUniqueViolation(err, "uq_applications_user_opportunity") {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("creating application: %w", err)
	}
	return nil
}

func (s *Store) GetSuccessfulApplication(ctx context.Context, opportunityID int) (*model.SuccessfulApplication, error) {
	var sa model.SuccessfulApplication
	if err := s.db.WithContext(ctx).First(&sa, "opportunity_id = ?", opportunityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding successful application: %w", err)
	}
	return &sa, nil
}

// newSuccessfulApplication builds the acceptance row. AcceptedAt is stamped
// here because the column default never fires on an explicit insert.
func newSuccessfulApplication(opportunityID, userID int) model.SuccessfulApplication {
	return model.SuccessfulApplication{
		OpportunityID: opportunityID,
		UserID:        userID,
		AcceptedAt:    time.Now().UTC(),
	}
}

// AcceptApplication inserts the successful_applications row and flips the
// opportunity to Filled inside one transaction. The primary key on
// opportunity_id turns a concurrent second accept into a unique violation
// instead of a double write, and guarding the status update on Open settles
// a race with a concurrent close.
func (s *Store) AcceptApplication(ctx context.Context, opportunityID, userID int) (*model.SuccessfulApplication, error) {
	sa := newSuccessfulApplication(opportunityID, userID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var opp model.Opportunity
		if err := tx.First(&opp, "id = ?", opportunityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOpportunityNotFound
			}
			return fmt.Errorf("finding opportunity: %w", err)
		}

		if err := tx.Create(&sa).Error; err != nil {
			if isUniqueViolation(err, "") {
				return domain.ErrAlreadyAccepted
			}
			return fmt.Errorf("creating successful application: %w", err)
		}

		result := tx.Model(&model.Opportunity{}).
			Where("id = ? AND status = ?", opportunityID, model.StatusOpen).
			Update("status", model.StatusFilled)
		if result.Error != nil {
			return fmt.Errorf("marking opportunity filled: %w", result.Error)
		}
		// Zero rows means the opportunity left Open underneath us; the
		// rollback also discards the acceptance row.
		if result.RowsAffected == 0 {
			return domain.ErrOpportunityNotOpen
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOpportunityNotFound),
			errors.Is(err, domain.ErrAlreadyAccepted),
			errors.Is(err, domain.ErrOpportunityNotOpen):
			return nil, err
		}
		return nil, fmt.Errorf("accept transaction failed: %w", err)
	}

	return &sa, nil
}
