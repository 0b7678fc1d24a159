// internal/storage/storage.go
package storage

import (
	"context"

	"github.com/JoshCentner/ShadowMatchPro/internal/model"
)

// OpportunityFilter narrows ListOpportunities. Zero-value fields are ignored.
type OpportunityFilter struct {
	OrganisationID *int
	Status         model.OpportunityStatus
	Format         model.OpportunityFormat
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name           *string
	OrganisationID *int
	CurrentRole    *string
	LookingFor     *string
	PictureURL     *string
}

// OpportunityUpdate carries a partial opportunity update. Nil fields are left
// untouched. Status changes go through the lifecycle service, which validates
// the transition before calling UpdateOpportunity.
type OpportunityUpdate struct {
	Title            *string
	Description      *string
	Format           *model.OpportunityFormat
	DurationLimit    *model.DurationLimit
	Status           *model.OpportunityStatus
	HostDetails      *string
	LearningOutcomes *string
}

// Store is the persistence gateway over the six marketplace entities. It is
// the only component that sees storage-native names; callers work purely in
// domain types. Absent rows surface as the matching domain.Err*NotFound
// sentinel, never as a transport error. Implementations are safe for
// concurrent use by many in-flight requests.
type Store interface {
	// Users
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, id int, update UserUpdate) (*model.User, error)

	// Organisations
	ListOrganisations(ctx context.Context) ([]model.Organisation, error)
	GetOrganisationByID(ctx context.Context, id int) (*model.Organisation, error)
	CreateOrganisation(ctx context.Context, org *model.Organisation) error

	// Opportunities
	ListOpportunities(ctx context.Context, filter OpportunityFilter) ([]model.OpportunityDetail, error)
	GetOpportunityByID(ctx context.Context, id int) (*model.OpportunityDetail, error)
	CreateOpportunity(ctx context.Context, opp *model.Opportunity) error
	UpdateOpportunity(ctx context.Context, id int, update OpportunityUpdate) (*model.Opportunity, error)
	ListOpportunitiesByCreator(ctx context.Context, userID int) ([]model.OpportunityDetail, error)

	// Applications
	ListApplicationsByOpportunity(ctx context.Context, opportunityID int) ([]model.ApplicationWithUser, error)
	ListApplicationsByUser(ctx context.Context, userID int) ([]model.ApplicationDetail, error)
	CreateApplication(ctx context.Context, app *model.Application) error

	// Acceptance. AcceptApplication inserts the SuccessfulApplication row and
	// moves the opportunity to Filled as one atomic unit: no concurrent reader
	// may observe the row while the status is still Open, and a second accept
	// fails with domain.ErrAlreadyAccepted.
	GetSuccessfulApplication(ctx context.Context, opportunityID int) (*model.SuccessfulApplication, error)
	AcceptApplication(ctx context.Context, opportunityID, userID int) (*model.SuccessfulApplication, error)

	// Learning areas
	ListLearningAreas(ctx context.Context) ([]model.LearningArea, error)
	CreateLearningArea(ctx context.Context, area *model.LearningArea) error
	LinkLearningArea(ctx context.Context, opportunityID, learningAreaID int) error
	ListLearningAreasForOpportunity(ctx context.Context, opportunityID int) ([]model.LearningArea, error)
}
