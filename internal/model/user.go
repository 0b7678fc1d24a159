// internal/model/user.go
package model

// User is created on first sign-in and completed later via the profile page.
// OrganisationID stays nil until the profile has been completed once.
type User struct {
	ID              int     `gorm:"primaryKey" json:"id"`
	Email           string  `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Name            string  `gorm:"type:text;not null" json:"name"`
	OrganisationID  *int    `gorm:"column:organisation_id" json:"organisationId"`
	CurrentRole     *string `gorm:"column:current_role;type:text" json:"currentRole"`
	LookingFor      *string `gorm:"column:looking_for;type:text" json:"lookingFor"`
	PictureURL      *string `gorm:"column:picture_url;type:text" json:"pictureUrl"`
	IsAuthenticated bool    `gorm:"column:is_authenticated;default:true" json:"isAuthenticated"`
}

func (User) TableName() string { return "users" }
