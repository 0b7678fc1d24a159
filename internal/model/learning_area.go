// internal/model/learning_area.go
package model

// LearningArea is a tag describing a skill or topic an opportunity offers
// exposure to.
type LearningArea struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name"`
}

func (LearningArea) TableName() string { return "learning_areas" }

// OpportunityLearningArea is the many-to-many join between opportunities and
// learning areas.
type OpportunityLearningArea struct {
	OpportunityID  int `gorm:"column:opportunity_id;primaryKey" json:"opportunityId"`
	LearningAreaID int `gorm:"column:learning_area_id;primaryKey" json:"learningAreaId"`
}

func (OpportunityLearningArea) TableName() string { return "opportunity_learning_areas" }
