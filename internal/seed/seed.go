// Package seed loads the sample organisations and learning-area vocabulary
// used by local development and the in-memory backend.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

func sampleOrganisations() []model.Organisation {
	return []model.Organisation{
		{Name: "SEEK", ShortCode: "SEEK"},
		{Name: "REA Group", ShortCode: "REA"},
		{Name: "Carsales", ShortCode: "CARS"},
		{Name: "Xero", ShortCode: "XERO"},
		{Name: "Culture Amp", ShortCode: "CAMP"},
		{Name: "MYOB", ShortCode: "MYOB"},
		{Name: "Australia Post", ShortCode: "APOST"},
	}
}

func sampleLearningAreas() []model.LearningArea {
	return []model.LearningArea{
		{Name: "Regulatory Compliance"},
		{Name: "Agile at Scale"},
		{Name: "Innovation"},
		{Name: "Sales Leadership"},
		{Name: "Content Development"},
		{Name: "HR Team Structure"},
		{Name: "Engineering Practices"},
		{Name: "Product Management"},
		{Name: "UX Research"},
		{Name: "Data Science"},
	}
}

// Run inserts the sample data, skipping rows that already exist.
func Run(ctx context.Context, store storage.Store) error {
	for _, org := range sampleOrganisations() {
		org := org
		if err := store.CreateOrganisation(ctx, &org); err != nil {
			if errors.Is(err, domain.ErrDuplicateOrgName) {
				continue
			}
			return fmt.Errorf("seeding organisation %q: %w", org.Name, err)
		}
	}

	for _, area := range sampleLearningAreas() {
		area := area
		if err := store.CreateLearningArea(ctx, &area); err != nil {
			if errors.Is(err, domain.ErrDuplicateAreaName) {
				continue
			}
			return fmt.Errorf("seeding learning area %q: %w", area.Name, err)
		}
	}

	return nil
}
