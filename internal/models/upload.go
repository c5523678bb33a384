package models

import "time"

type UploadStatus string

const (
	UploadRequested UploadStatus = "REQUESTED"
	UploadSuccess   UploadStatus = "SUCCESS"
	UploadFailure   UploadStatus = "FAILURE"
)

// Terminal reports whether no further transition is permitted.
func (s UploadStatus) Terminal() bool {
	return s == UploadSuccess || s == UploadFailure
}

const UploadKindResume = "resume"

// Upload tracks one requested artifact upload. A row is created in
// REQUESTED when a signed upload credential is issued and moves exactly
// once to SUCCESS or FAILURE. "The applicant's resume" is always the
// most recently created row with status SUCCESS; there is no separate
// current-resume pointer.
type Upload struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	ApplicantID      uint         `gorm:"not null;index" json:"-"`
	Kind             string       `gorm:"size:20;not null;default:'resume'" json:"kind"`
	ContentType      string       `gorm:"size:100;not null" json:"content_type"`
	OriginalFilename string       `gorm:"size:255;not null" json:"original_filename"`
	Status           UploadStatus `gorm:"size:10;not null;default:'REQUESTED';index" json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	CompletedAt      *time.Time   `json:"completed_at"`

	Applicant Applicant `gorm:"foreignKey:ApplicantID" json:"-"`
}
