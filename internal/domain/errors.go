// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnauthorized       = errors.New("unauthorized")

	// Organisation-related errors
	ErrOrganisationNotFound = errors.New("organisation not found")
	ErrDuplicateOrgName     = errors.New("organisation name already exists")
	ErrNoOrganisation       = errors.New("user has no organisation set")

	// Opportunity-related errors
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrOpportunityNotOpen  = errors.New("opportunity is not open")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotCreator          = errors.New("only the creator may modify this opportunity")

	// Application-related errors
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("user has already applied to this opportunity")
	ErrAlreadyAccepted      = errors.New("an application has already been accepted for this opportunity")

	// Learning-area-related errors
	ErrLearningAreaNotFound = errors.New("learning area not found")
	ErrDuplicateAreaName    = errors.New("learning area name already exists")
)
