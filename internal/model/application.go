// internal/model/application.go
package model

import "time"

// Application is a user's request to take part in an Opportunity. Immutable
// once created; at most one exists per (user, opportunity) pair.
type Application struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	UserID        int       `gorm:"column:user_id;not null;uniqueIndex:uq_applications_user_opportunity" json:"userId"`
	OpportunityID int       `gorm:"column:opportunity_id;not null;uniqueIndex:uq_applications_user_opportunity" json:"opportunityId"`
	Message       *string   `gorm:"type:text" json:"message"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Application) TableName() string { return "applications" }

// SuccessfulApplication records the single accepted application for an
// opportunity. The primary key on OpportunityID is what makes a second
// acceptance impossible at the storage layer.
type SuccessfulApplication struct {
	OpportunityID int       `gorm:"column:opportunity_id;primaryKey" json:"opportunityId"`
	UserID        int       `gorm:"column:user_id;not null" json:"userId"`
	AcceptedAt    time.Time `gorm:"column:accepted_at" json:"acceptedAt"`
}

func (SuccessfulApplication) TableName() string { return "successful_applications" }

// ApplicationWithUser is the shape embedded in OpportunityDetail.
type ApplicationWithUser struct {
	Application
	User User `json:"user"`
}

// ApplicationDetail is the shape returned when listing a user's own
// applications: the application plus the base opportunity it targets and
// that opportunity's organisation. Deliberately not recursive.
type ApplicationDetail struct {
	Application
	User         User         `json:"user"`
	Opportunity  Opportunity  `json:"opportunity"`
	Organisation Organisation `json:"organisation"`
}
