// internal/storage/postgres/user.go
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

func (s *Store) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	user.IsAuthenticated = true
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id int, update storage.UserUpdate) (*model.User, error) {
	columns := map[string]any{}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.OrganisationID != nil {
		columns["organisation_id"] = *update.OrganisationID
	}
	if update.CurrentRole != nil {
		columns["current_role"] = *update.CurrentRole
	}
	if update.LookingFor != nil {
		columns["looking_for"] = *update.LookingFor
	}
	if update.PictureURL != nil {
		columns["picture_url"] = *update.PictureURL
	}

	if len(columns) > 0 {
		result := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, fmt.Errorf("updating user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrUserNotFound
		}
	}

	return s.GetUserByID(ctx, id)
}
