package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/config"
	"github.com/talentbridge/intake-backend/internal/models"
	"github.com/talentbridge/intake-backend/internal/storage"
	"gorm.io/gorm"
)

// allowedContentTypes maps accepted MIME types to the object-key
// extension used for them.
var allowedContentTypes = map[string]string{
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

// NormalizeContentType strips any ";charset=..." style suffix and
// lowercases the media type.
func NormalizeContentType(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// ObjectKey is the deterministic storage key for an upload. uploadID is
// a database-assigned surrogate key, so keys never collide and the
// most recent SUCCESS row is a reliable stand-in for a current-resume
// pointer.
func ObjectKey(applicantID, uploadID uint, ext string) string {
	return fmt.Sprintf("resumes/%d/%d.%s", applicantID, uploadID, ext)
}

func applicantPrefix(applicantID uint) string {
	return fmt.Sprintf("resumes/%d/", applicantID)
}

// UploadService owns the REQUESTED -> SUCCESS|FAILURE state machine for
// uploaded artifacts and the current-resume query.
type UploadService struct {
	db          *gorm.DB
	store       storage.ObjectStore
	strategy    config.UploadSignStrategy
	uploadTTL   time.Duration
	downloadTTL time.Duration
}

func NewUploadService(db *gorm.DB, store storage.ObjectStore, cfg *config.Config) *UploadService {
	return &UploadService{
		db:          db,
		store:       store,
		strategy:    cfg.UploadSignStrategy,
		uploadTTL:   cfg.UploadURLTTL,
		downloadTTL: cfg.DownloadURLTTL,
	}
}

// UploadCredential is the result of RequestUploadURL. Exactly one of
// SignedLink / PresignedPost is populated, per the configured strategy.
type UploadCredential struct {
	Upload        models.Upload
	SignedLink    string
	PresignedPost *storage.PresignedPost
}

// RequestUploadURL creates an Upload row in REQUESTED and signs a
// time-limited upload credential for its storage key. Every call
// creates an independent row; there is no de-duplication.
func (s *UploadService) RequestUploadURL(ctx context.Context, applicantID uint, filename, contentType string) (*UploadCredential, error) {
	ct := NormalizeContentType(contentType)
	ext, ok := allowedContentTypes[ct]
	if !ok {
		return nil, apperr.Validation("unsupported content type")
	}
	if filename == "" {
		return nil, apperr.Validation("original filename is required")
	}

	upload := models.Upload{
		ApplicantID:      applicantID,
		Kind:             models.UploadKindResume,
		ContentType:      ct,
		OriginalFilename: filename,
		Status:           models.UploadRequested,
	}
	if err := s.db.WithContext(ctx).Create(&upload).Error; err != nil {
		return nil, apperr.Internal("failed to create upload", err)
	}

	key := ObjectKey(applicantID, upload.ID, ext)
	cred := &UploadCredential{Upload: upload}

	switch s.strategy {
	case config.SignStrategyPost:
		post, err := s.store.SignPost(ctx, key, ct, s.uploadTTL)
		if err != nil {
			return nil, apperr.Internal("failed to sign upload credential", err)
		}
		cred.PresignedPost = post
	default:
		link, err := s.store.SignPut(ctx, key, ct, s.uploadTTL)
		if err != nil {
			return nil, apperr.Internal("failed to sign upload credential", err)
		}
		cred.SignedLink = link
	}
	return cred, nil
}

// CompleteUpload moves an upload from REQUESTED to the given terminal
// status. The transition is a single conditional UPDATE guarded on the
// current status, so two racing completions cannot both terminalize the
// row; the loser sees zero rows affected and is rejected.
//
// An upload that does not exist or is owned by another applicant is
// reported as a validation error, not a 404, so upload ids cannot be
// probed for existence.
func (s *UploadService) CompleteUpload(ctx context.Context, applicantID, uploadID uint, status models.UploadStatus) (*models.Upload, error) {
	if !status.Terminal() {
		return nil, apperr.Validation("status must be SUCCESS or FAILURE")
	}

	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Upload{}).
		Where("id = ? AND applicant_id = ? AND status = ?", uploadID, applicantID, models.UploadRequested).
		Updates(map[string]interface{}{"status": status, "completed_at": now})
	if res.Error != nil {
		return nil, apperr.Internal("failed to complete upload", res.Error)
	}

	if res.RowsAffected == 0 {
		// Classification only; the guard above already decided the outcome.
		var existing models.Upload
		err := s.db.WithContext(ctx).Where("id = ? AND applicant_id = ?", uploadID, applicantID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("upload not found")
		}
		if err != nil {
			return nil, apperr.Internal("failed to load upload", err)
		}
		return nil, apperr.Validation("upload already completed")
	}

	var upload models.Upload
	if err := s.db.WithContext(ctx).First(&upload, uploadID).Error; err != nil {
		return nil, apperr.Internal("failed to load upload", err)
	}
	return &upload, nil
}

// LatestSuccessfulUpload is the single definition of "the applicant's
// current resume": the most recently created upload of the given kind
// with status SUCCESS.
func (s *UploadService) LatestSuccessfulUpload(ctx context.Context, applicantID uint, kind string) (*models.Upload, error) {
	var upload models.Upload
	err := s.db.WithContext(ctx).
		Where("applicant_id = ? AND kind = ? AND status = ?", applicantID, kind, models.UploadSuccess).
		Order("created_at DESC, id DESC").
		First(&upload).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no resume on file")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query uploads", err)
	}
	return &upload, nil
}

// CurrentResumeDownloadURL signs a time-limited GET URL for the
// applicant's current resume.
func (s *UploadService) CurrentResumeDownloadURL(ctx context.Context, applicantID uint) (string, error) {
	upload, err := s.LatestSuccessfulUpload(ctx, applicantID, models.UploadKindResume)
	if err != nil {
		return "", err
	}

	ext := allowedContentTypes[upload.ContentType]
	key := ObjectKey(applicantID, upload.ID, ext)
	url, err := s.store.SignGet(ctx, key, s.downloadTTL)
	if err != nil {
		return "", apperr.Internal("failed to sign download url", err)
	}
	return url, nil
}

// DeleteAllUploads removes every stored object under the applicant's
// prefix. Upload rows are removed together with the applicant record,
// after the submissions that reference them. Storage failures are
// surfaced, not swallowed.
func (s *UploadService) DeleteAllUploads(ctx context.Context, applicantID uint) error {
	if err := s.store.DeletePrefix(ctx, applicantPrefix(applicantID)); err != nil {
		return apperr.Internal("failed to delete stored uploads", err)
	}
	return nil
}
