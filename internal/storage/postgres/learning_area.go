// internal/storage/postgres/learning_area.go
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
)

func (s *Store) ListLearningAreas(ctx context.Context) ([]model.LearningArea, error) {
	var areas []model.LearningArea
	if err := s.db.WithContext(ctx).Order("id").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("listing learning areas: %w", err)
	}
	return areas, nil
}

func (s *Store) CreateLearningArea(ctx context.Context, area *model.LearningArea) error {
	if err := s.db.WithContext(ctx).Create(area).Error; err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicateAreaName
		}
		return fmt.Errorf("creating learning area: %w", err)
	}
	return nil
}

func (s *Store) LinkLearningArea(ctx context.Context, opportunityID, learningAreaID int) error {
	link := model.OpportunityLearningArea{
		OpportunityID:  opportunityID,
		LearningAreaID: learningAreaID,
	}
	// Linking twice is a no-op rather than an error.
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrLearningAreaNotFound
		}
		return fmt.Errorf("linking learning area: %w", err)
	}
	return nil
}

func (s *Store) ListLearningAreasForOpportunity(ctx context.Context, opportunityID int) ([]model.LearningArea, error) {
	var areas []model.LearningArea
	if err := s.db.WithContext(ctx).
		Joins("JOIN opportunity_learning_areas ON learning_areas.id = opportunity_learning_areas.learning_area_id").
		Where("opportunity_learning_areas.opportunity_id = ?", opportunityID).
		Order("learning_areas.id").
		Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("listing learning areas for opportunity: %w", err)
	}
	return areas, nil
}
