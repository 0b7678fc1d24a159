// internal/model/organisation.go
package model

// Organisation is a company whose employees can host and shadow roles.
// Rows are seeded once and treated as immutable afterwards.
type Organisation struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:text;uniqueIndex;not null" json:"name"`
	ShortCode string `gorm:"column:short_code;type:varchar(10);not null" json:"shortCode"`
}

func (Organisation) TableName() string { return "organisations" }
