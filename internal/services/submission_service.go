package services

import (
	"context"
	"errors"

	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionService enforces the draft-vs-final precedence rule for an
// applicant's profile submission: a final submission always wins, a
// draft is returned only in its absence.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// SaveDraft upserts the applicant's single draft row. The draft is
// replaced wholesale on every save; the latest write wins. Drafts saved
// after a final submission exists are accepted and stored, but reads
// keep preferring the final submission.
func (s *SubmissionService) SaveDraft(ctx context.Context, applicantID uint, profile datatypes.JSON, resumeUploadID *uint) (*models.DraftSubmission, error) {
	draft := models.DraftSubmission{
		ApplicantID:    applicantID,
		Profile:        profile,
		ResumeUploadID: resumeUploadID,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "applicant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"profile", "resume_upload_id", "updated_at"}),
	}).Create(&draft).Error
	if err != nil {
		return nil, apperr.Internal("failed to save draft", err)
	}
	return &draft, nil
}

// CreateFinal creates the applicant's authoritative submission. The
// referenced resume upload must belong to the applicant and have status
// SUCCESS; a failed, pending or foreign upload cannot be submitted.
// Existing drafts are left alone.
func (s *SubmissionService) CreateFinal(ctx context.Context, applicantID uint, profile datatypes.JSON, resumeUploadID uint) (*models.Submission, error) {
	var upload models.Upload
	err := s.db.WithContext(ctx).
		Where("id = ? AND applicant_id = ?", resumeUploadID, applicantID).
		First(&upload).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("resume upload not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load resume upload", err)
	}
	if upload.Status != models.UploadSuccess {
		return nil, apperr.Validation("resume upload is not completed")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("applicant_id = ?", applicantID).Count(&count).Error; err != nil {
		return nil, apperr.Internal("failed to check existing submission", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("submission already exists")
	}

	submission := models.Submission{
		ApplicantID:    applicantID,
		Profile:        profile,
		ResumeUploadID: resumeUploadID,
	}
	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("submission already exists")
		}
		return nil, apperr.Internal("failed to create submission", err)
	}
	return &submission, nil
}

// CurrentSubmission resolves "the applicant's submission": the final
// one when it exists, the draft otherwise, nil when neither exists.
func (s *SubmissionService) CurrentSubmission(ctx context.Context, applicantID uint) (profile datatypes.JSON, resumeUploadID *uint, isFinal bool, err error) {
	var final models.Submission
	ferr := s.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&final).Error
	if ferr == nil {
		id := final.ResumeUploadID
		return final.Profile, &id, true, nil
	}
	if !errors.Is(ferr, gorm.ErrRecordNotFound) {
		return nil, nil, false, apperr.Internal("failed to load submission", ferr)
	}

	var draft models.DraftSubmission
	derr := s.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&draft).Error
	if derr == nil {
		return draft.Profile, draft.ResumeUploadID, false, nil
	}
	if !errors.Is(derr, gorm.ErrRecordNotFound) {
		return nil, nil, false, apperr.Internal("failed to load draft", derr)
	}
	return nil, nil, false, nil
}
