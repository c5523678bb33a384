package models

import (
	"time"

	"gorm.io/datatypes"
)

// Opportunity is a posting submitted by a partner organization through
// the scope-gated intake endpoint.
type Opportunity struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Organization string         `gorm:"size:255;not null;index" json:"organization"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Details      datatypes.JSON `gorm:"type:jsonb" json:"details"`
	SubmittedBy  string         `gorm:"size:255" json:"-"` // token subject of the submitting partner
	CreatedAt    time.Time      `json:"created_at"`
}
