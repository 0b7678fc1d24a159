// internal/model/opportunity.go
package model

import "time"

type OpportunityFormat string

const (
	FormatInPerson OpportunityFormat = "In-Person"
	FormatOnline   OpportunityFormat = "Online"
	FormatHybrid   OpportunityFormat = "Hybrid"
)

func (f OpportunityFormat) Valid() bool {
	switch f {
	case FormatInPerson, FormatOnline, FormatHybrid:
		return true
	}
	return false
}

type OpportunityStatus string

const (
	StatusOpen   OpportunityStatus = "Open"
	StatusClosed OpportunityStatus = "Closed"
	StatusFilled OpportunityStatus = "Filled"
)

func (s OpportunityStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusFilled:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transitions are permitted.
func (s OpportunityStatus) Terminal() bool { return s == StatusClosed || s == StatusFilled }

type DurationLimit string

const (
	DurationOneHour     DurationLimit = "1 Hour"
	DurationHalfDay     DurationLimit = "Half-Day"
	DurationOneDay      DurationLimit = "1 Day"
	DurationTwoHalfDays DurationLimit = "2 Half-Days"
	DurationTwoDays     DurationLimit = "2 Days"
)

func (d DurationLimit) Valid() bool {
	switch d {
	case DurationOneHour, DurationHalfDay, DurationOneDay, DurationTwoHalfDays, DurationTwoDays:
		return true
	}
	return false
}

// Opportunity is a shadowing slot offered by a user on behalf of their
// organisation. Status starts at Open; Closed and Filled are terminal.
type Opportunity struct {
	ID               int               `gorm:"primaryKey" json:"id"`
	Title            string            `gorm:"type:text;not null" json:"title"`
	Description      string            `gorm:"type:text;not null" json:"description"`
	Format           OpportunityFormat `gorm:"type:text;not null" json:"format"`
	DurationLimit    DurationLimit     `gorm:"column:duration_limit;type:text;not null" json:"durationLimit"`
	Status           OpportunityStatus `gorm:"type:text;not null;default:'Open'" json:"status"`
	OrganisationID   int               `gorm:"column:organisation_id;not null" json:"organisationId"`
	CreatedByUserID  int               `gorm:"column:created_by_user_id;not null" json:"createdByUserId"`
	CreatedAt        time.Time         `gorm:"column:created_at" json:"createdAt"`
	HostDetails      *string           `gorm:"column:host_details;type:text" json:"hostDetails"`
	LearningOutcomes *string           `gorm:"column:learning_outcomes;type:text" json:"learningOutcomes"`
}

func (Opportunity) TableName() string { return "opportunities" }

// OpportunityDetail is the denormalised read shape returned by every
// opportunity read path: the base row plus its organisation, creator and
// learning-area tags, the applications made so far, and the accepted
// applicant once one exists. Both storage backends assemble it through a
// single function so list and detail entries are always identical for the
// same underlying state.
type OpportunityDetail struct {
	Opportunity
	Organisation        Organisation          `json:"organisation"`
	Creator             User                  `json:"creator"`
	LearningAreas       []LearningArea        `json:"learningAreas"`
	Applications        []ApplicationWithUser `json:"applications"`
	ApplicationCount    int                   `json:"applicationCount"`
	SuccessfulApplicant *User                 `json:"successfulApplicant,omitempty"`
}
