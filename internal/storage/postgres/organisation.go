// internal/storage/postgres/organisation.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
)

func (s *Store) ListOrganisations(ctx context.Context) ([]model.Organisation, error) {
	var orgs []model.Organisation
	if err := s.db.WithContext(ctx).Order("id").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("listing organisations: %w", err)
	}
	return orgs, nil
}

func (s *Store) GetOrganisationByID(ctx context.Context, id int) (*model.Organisation, error) {
	var org model.Organisation
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("finding organisation: %w", err)
	}
	return &org, nil
}

func (s *Store) CreateOrganisation(ctx context.Context, org *model.Organisation) error {
	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrDuplicateOrgName
		}
		return fmt.Errorf("creating organisation: %w", err)
	}
	return nil
}
