// internal/storage/postgres/opportunity.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

func (s *Store) ListOpportunities(ctx context.Context, filter storage.OpportunityFilter) ([]model.OpportunityDetail, error) {
	query := s.db.WithContext(ctx).Order("id")
	if filter.OrganisationID != nil {
		query = query.Where("organisation_id = ?", *filter.OrganisationID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Format != "" {
		query = query.Where("format = ?", filter.Format)
	}

	var opps []model.Opportunity
	if err := query.Find(&opps).Error; err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}
	return s.assembleDetails(ctx, opps)
}

func (s *Store) GetOpportunityByID(ctx context.Context, id int) (*model.OpportunityDetail, error) {
	var opp model.Opportunity
	if err := s.db.WithContext(ctx).First(&opp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("finding opportunity: %w", err)
	}

	detail, err := s.assembleDetail(ctx, opp)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Store) CreateOpportunity(ctx context.Context, opp *model.Opportunity) error {
	if opp.Status == "" {
		opp.Status = model.StatusOpen
	}
	if err := s.db.WithContext(ctx).Create(opp).Error; err != nil {
		return fmt.Errorf("creating opportunity: %w", err)
	}
	return nil
}

func (s *Store) UpdateOpportunity(ctx context.Context, id int, update storage.OpportunityUpdate) (*model.Opportunity, error) {
	columns := map[string]any{}
	if update.Title != nil {
		columns["title"] = *update.Title
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}
	if update.Format != nil {
		columns["format"] = *update.Format
	}
	if update.DurationLimit != nil {
		columns["duration_limit"] = *update.DurationLimit
	}
	if update.Status != nil {
		columns["status"] = *update.Status
	}
	if update.HostDetails != nil {
		columns["host_details"] = *update.HostDetails
	}
	if update.LearningOutcomes != nil {
		columns["learning_outcomes"] = *update.LearningOutcomes
	}

	if len(columns) > 0 {
		result := s.db.WithContext(ctx).Model(&model.Opportunity{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, fmt.Errorf("updating opportunity: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrOpportunityNotFound
		}
	}

	var opp model.Opportunity
	if err := s.db.WithContext(ctx).First(&opp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("reloading opportunity: %w", err)
	}
	return &opp, nil
}

func (s *Store) ListOpportunitiesByCreator(ctx context.Context, userID int) ([]model.OpportunityDetail, error) {
	var opps []model.Opportunity
	if err := s.db.WithContext(ctx).Where("created_by_user_id = ?", userID).Order("id").Find(&opps).Error; err != nil {
		return nil, fmt.Errorf("listing opportunities by creator: %w", err)
	}
	return s.assembleDetails(ctx, opps)
}

func (s *Store) assembleDetails(ctx context.Context, opps []model.Opportunity) ([]model.OpportunityDetail, error) {
	details := make([]model.OpportunityDetail, 0, len(opps))
	for _, opp := range opps {
		detail, err := s.assembleDetail(ctx, opp)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// assembleDetail is the one place the denormalised opportunity read shape is
// produced for this backend, so list and detail responses always agree.
func (s *Store) assembleDetail(ctx context.Context, opp model.Opportunity) (*model.OpportunityDetail, error) {
	org, err := s.GetOrganisationByID(ctx, opp.OrganisationID)
	if err != nil {
		return nil, fmt.Errorf("enriching opportunity %d: %w", opp.ID, err)
	}

	creator, err := s.GetUserByID(ctx, opp.CreatedByUserID)
	if err != nil {
		return nil, fmt.Errorf("enriching opportunity %d: %w", opp.ID, err)
	}

	areas, err := s.ListLearningAreasForOpportunity(ctx, opp.ID)
	if err != nil {
		return nil, err
	}

	apps, err := s.ListApplicationsByOpportunity(ctx, opp.ID)
	if err != nil {
		return nil, err
	}

	detail := &model.OpportunityDetail{
		Opportunity:      opp,
		Organisation:     *org,
		Creator:          *creator,
		LearningAreas:    areas,
		Applications:     apps,
		ApplicationCount: len(apps),
	}

	sa, err := s.GetSuccessfulApplication(ctx, opp.ID)
	switch {
	case err == nil:
		applicant, err := s.GetUserByID(ctx, sa.UserID)
		if err != nil {
			return nil, fmt.Errorf("enriching opportunity %d: %w", opp.ID, err)
		}
		detail.SuccessfulApplicant = applicant
	case errors.Is(err, domain.ErrNotFound):
		// no acceptance yet
	default:
		return nil, err
	}

	return detail, nil
}
