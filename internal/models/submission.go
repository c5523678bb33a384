package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is an applicant's final, authoritative profile. At most one
// exists per applicant and it always wins over any draft.
type Submission struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ApplicantID    uint           `gorm:"not null;uniqueIndex" json:"-"`
	Profile        datatypes.JSON `gorm:"type:jsonb" json:"profile"`
	ResumeUploadID uint           `gorm:"not null" json:"resume_upload_id"`
	CreatedAt      time.Time      `json:"created_at"`

	Applicant    Applicant `gorm:"foreignKey:ApplicantID" json:"-"`
	ResumeUpload Upload    `gorm:"foreignKey:ResumeUploadID" json:"-"`
}

// DraftSubmission is the applicant's in-progress profile. One row per
// applicant, overwritten wholesale on every save (last write wins).
type DraftSubmission struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ApplicantID    uint           `gorm:"not null;uniqueIndex" json:"-"`
	Profile        datatypes.JSON `gorm:"type:jsonb" json:"profile"`
	ResumeUploadID *uint          `json:"resume_upload_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Applicant Applicant `gorm:"foreignKey:ApplicantID" json:"-"`
}
