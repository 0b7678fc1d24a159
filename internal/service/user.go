// internal/service/user.go
package service

import (
	"context"
	"errors"

	"github.com/JoshCentner/ShadowMatchPro/internal/auth"
	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

// UserService handles sign-in and profile maintenance. Identity is vouched
// for by the external provider; this layer only creates-or-fetches the row
// and issues the session token.
type UserService struct {
	store        storage.Store
	tokenManager *auth.TokenManager
}

func NewUserService(store storage.Store, tokenManager *auth.TokenManager) *UserService {
	return &UserService{
		store:        store,
		tokenManager: tokenManager,
	}
}

type RegisterInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"required"`
	PictureURL *string `json:"pictureUrl"`
}

type RegisterOutput struct {
	User    *model.User `json:"user"`
	Created bool        `json:"-"`
}

// Register creates a user on first sign-in, or returns the existing row when
// the email is already known.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	existing, err := s.store.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return &RegisterOutput{User: existing, Created: false}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:      input.Email,
		Name:       input.Name,
		PictureURL: input.PictureURL,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &RegisterOutput{User: user, Created: true}, nil
}

type GoogleSignInInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"required"`
	PictureURL *string `json:"pictureUrl"`
}

type GoogleSignInOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// GoogleSignIn creates or refreshes a user from the identity-provider
// profile and issues a bearer token for subsequent writes.
func (s *UserService) GoogleSignIn(ctx context.Context, input GoogleSignInInput) (*GoogleSignInOutput, error) {
	user, err := s.store.GetUserByEmail(ctx, input.Email)
	switch {
	case err == nil:
		update := storage.UserUpdate{}
		changed := false
		if user.Name != input.Name {
			update.Name = &input.Name
			changed = true
		}
		if input.PictureURL != nil && (user.PictureURL == nil || *user.PictureURL != *input.PictureURL) {
			update.PictureURL = input.PictureURL
			changed = true
		}
		if changed {
			user, err = s.store.UpdateUser(ctx, user.ID, update)
			if err != nil {
				return nil, err
			}
		}
	case errors.Is(err, domain.ErrUserNotFound):
		user = &model.User{
			Email:      input.Email,
			Name:       input.Name,
			PictureURL: input.PictureURL,
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	token, err := s.tokenManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &GoogleSignInOutput{User: user, Token: token}, nil
}

// Me returns the current user by id.
func (s *UserService) Me(ctx context.Context, userID int) (*model.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name           *string `json:"name"`
	OrganisationID *int    `json:"organisationId"`
	CurrentRole    *string `json:"currentRole"`
	LookingFor     *string `json:"lookingFor"`
	PictureURL     *string `json:"pictureUrl"`
}

// UpdateProfile applies a partial profile update. A referenced organisation
// must exist.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*model.User, error) {
	if input.OrganisationID != nil {
		if _, err := s.store.GetOrganisationByID(ctx, *input.OrganisationID); err != nil {
			return nil, err
		}
	}

	return s.store.UpdateUser(ctx, userID, storage.UserUpdate{
		Name:           input.Name,
		OrganisationID: input.OrganisationID,
		CurrentRole:    input.CurrentRole,
		LookingFor:     input.LookingFor,
		PictureURL:     input.PictureURL,
	})
}
