package services

import (
	"context"
	"errors"

	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/models"
	"gorm.io/gorm"
)

// ApplicantService is the system of record for applicants. Emails are
// stored in canonical lowercase form, so uniqueness and lookups are
// case-insensitive.
type ApplicantService struct {
	db *gorm.DB
}

func NewApplicantService(db *gorm.DB) *ApplicantService {
	return &ApplicantService{db: db}
}

// Create registers an applicant on first profile submission.
func (s *ApplicantService) Create(ctx context.Context, email string) (*models.Applicant, error) {
	canonical := models.CanonicalEmail(email)
	if canonical == "" {
		return nil, apperr.Validation("email is required")
	}

	var existing models.Applicant
	err := s.db.WithContext(ctx).Where("email = ?", canonical).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("applicant already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check applicant", err)
	}

	applicant := models.Applicant{Email: canonical}
	if err := s.db.WithContext(ctx).Create(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("applicant already exists")
		}
		return nil, apperr.Internal("failed to create applicant", err)
	}
	return &applicant, nil
}

// FindByEmail looks an applicant up by the canonical form of email.
func (s *ApplicantService) FindByEmail(ctx context.Context, email string) (*models.Applicant, error) {
	var applicant models.Applicant
	err := s.db.WithContext(ctx).
		Where("email = ?", models.CanonicalEmail(email)).
		First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("applicant not registered")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load applicant", err)
	}
	return &applicant, nil
}

// AttachExternalID records the identity-provider subject for an
// applicant. Privileged operation; callers are role-gated.
func (s *ApplicantService) AttachExternalID(ctx context.Context, applicantID uint, externalID string) error {
	if externalID == "" {
		return apperr.Validation("external id is required")
	}
	res := s.db.WithContext(ctx).Model(&models.Applicant{}).
		Where("id = ?", applicantID).
		Update("external_id", externalID)
	if res.Error != nil {
		return apperr.Internal("failed to attach external id", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("applicant not registered")
	}
	return nil
}

// SetPaused flips the applicant's pause flag.
func (s *ApplicantService) SetPaused(ctx context.Context, applicantID uint, paused bool) error {
	res := s.db.WithContext(ctx).Model(&models.Applicant{}).
		Where("id = ?", applicantID).
		Update("paused", paused)
	if res.Error != nil {
		return apperr.Internal("failed to update applicant", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("applicant not registered")
	}
	return nil
}

// Delete removes the applicant and every row that references them.
// Stored objects are removed separately via UploadService before this
// is called.
func (s *ApplicantService) Delete(ctx context.Context, applicantID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx.Where("applicant_id = ?", applicantID).Delete(&models.Submission{})
		tx.Where("applicant_id = ?", applicantID).Delete(&models.DraftSubmission{})
		tx.Where("applicant_id = ?", applicantID).Delete(&models.Upload{})
		return tx.Delete(&models.Applicant{}, applicantID).Error
	})
	if err != nil {
		return apperr.Internal("failed to delete applicant", err)
	}
	return nil
}
