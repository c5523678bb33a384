package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/config"
	"github.com/talentbridge/intake-backend/internal/models"
)

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", NormalizeContentType("application/pdf"))
	assert.Equal(t, "application/pdf", NormalizeContentType("application/pdf; charset=utf-8"))
	assert.Equal(t, "image/jpeg", NormalizeContentType(" IMAGE/JPEG "))
	assert.Equal(t, "image/png", NormalizeContentType("image/png;charset=binary"))
}

func TestRequestUploadURLPutStrategy(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{}
	svc := NewUploadService(db, store, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	cred, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, models.UploadRequested, cred.Upload.Status)
	assert.Equal(t, "resume.pdf", cred.Upload.OriginalFilename)
	assert.NotEmpty(t, cred.SignedLink)
	assert.Nil(t, cred.PresignedPost)

	require.Len(t, store.putKeys, 1)
	assert.Equal(t, ObjectKey(applicant.ID, cred.Upload.ID, "pdf"), store.putKeys[0])
}

func TestRequestUploadURLPostStrategy(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{}
	svc := NewUploadService(db, store, testUploadConfig(config.SignStrategyPost))
	applicant := createApplicant(t, db, "jane@example.com")

	cred, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.NoError(t, err)

	assert.Empty(t, cred.SignedLink)
	require.NotNil(t, cred.PresignedPost)
	assert.Equal(t, ObjectKey(applicant.ID, cred.Upload.ID, "docx"), cred.PresignedPost.Fields["key"])
}

func TestRequestUploadURLRejectsContentTypes(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	for _, ct := range []string{"text/html", "application/zip", "", "application/pdfx"} {
		_, err := svc.RequestUploadURL(context.Background(), applicant.ID, "f", ct)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "content type %q", ct)
	}

	// charset suffix on an allowed type is fine
	_, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf; charset=UTF-8")
	assert.NoError(t, err)
}

func TestRequestUploadURLNoDeduplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	first, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)
	second, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, first.Upload.ID, second.Upload.ID)
}

func TestCompleteUploadTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	cred, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	upload, err := svc.CompleteUpload(context.Background(), applicant.ID, cred.Upload.ID, models.UploadSuccess)
	require.NoError(t, err)
	assert.Equal(t, models.UploadSuccess, upload.Status)
	assert.NotNil(t, upload.CompletedAt)

	// Re-completion is rejected regardless of the requested status.
	for _, status := range []models.UploadStatus{models.UploadSuccess, models.UploadFailure} {
		_, err := svc.CompleteUpload(context.Background(), applicant.ID, cred.Upload.ID, status)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "status %s", status)
	}
}

func TestCompleteUploadRejectsNonTerminalStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	cred, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	_, err = svc.CompleteUpload(context.Background(), applicant.ID, cred.Upload.ID, models.UploadRequested)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = svc.CompleteUpload(context.Background(), applicant.ID, cred.Upload.ID, models.UploadStatus("DONE"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCompleteUploadOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	owner := createApplicant(t, db, "owner@example.com")
	intruder := createApplicant(t, db, "intruder@example.com")

	cred, err := svc.RequestUploadURL(context.Background(), owner.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	// A foreign upload id looks exactly like a nonexistent one: a 400,
	// never a 404 that would confirm existence.
	_, err = svc.CompleteUpload(context.Background(), intruder.ID, cred.Upload.ID, models.UploadSuccess)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	var unchanged models.Upload
	require.NoError(t, db.First(&unchanged, cred.Upload.ID).Error)
	assert.Equal(t, models.UploadRequested, unchanged.Status)

	_, err = svc.CompleteUpload(context.Background(), owner.ID, 99999, models.UploadSuccess)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestLatestSuccessfulUpload(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{}
	svc := NewUploadService(db, store, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	_, err := svc.CurrentResumeDownloadURL(context.Background(), applicant.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	first, err := svc.RequestUploadURL(context.Background(), applicant.ID, "v1.pdf", "application/pdf")
	require.NoError(t, err)
	_, err = svc.CompleteUpload(context.Background(), applicant.ID, first.Upload.ID, models.UploadSuccess)
	require.NoError(t, err)

	second, err := svc.RequestUploadURL(context.Background(), applicant.ID, "v2.pdf", "application/pdf")
	require.NoError(t, err)
	_, err = svc.CompleteUpload(context.Background(), applicant.ID, second.Upload.ID, models.UploadSuccess)
	require.NoError(t, err)

	// A later FAILURE never shadows the last SUCCESS.
	third, err := svc.RequestUploadURL(context.Background(), applicant.ID, "v3.pdf", "application/pdf")
	require.NoError(t, err)
	_, err = svc.CompleteUpload(context.Background(), applicant.ID, third.Upload.ID, models.UploadFailure)
	require.NoError(t, err)

	latest, err := svc.LatestSuccessfulUpload(context.Background(), applicant.ID, models.UploadKindResume)
	require.NoError(t, err)
	assert.Equal(t, second.Upload.ID, latest.ID)

	url, err := svc.CurrentResumeDownloadURL(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.Contains(t, url, ObjectKey(applicant.ID, second.Upload.ID, "pdf"))
}

func TestLatestSuccessfulUploadIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	owner := createApplicant(t, db, "owner@example.com")
	other := createApplicant(t, db, "other@example.com")

	cred, err := svc.RequestUploadURL(context.Background(), owner.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)
	_, err = svc.CompleteUpload(context.Background(), owner.ID, cred.Upload.ID, models.UploadSuccess)
	require.NoError(t, err)

	_, err = svc.CurrentResumeDownloadURL(context.Background(), other.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteAllUploads(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{}
	svc := NewUploadService(db, store, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	_, err := svc.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllUploads(context.Background(), applicant.ID))
	assert.Equal(t, []string{applicantPrefix(applicant.ID)}, store.deletedPrefixes)
}

func TestDeleteAllUploadsSurfacesStorageFailure(t *testing.T) {
	db := newTestDB(t)
	store := &fakeObjectStore{failDelete: errors.New("bucket unreachable")}
	svc := NewUploadService(db, store, testUploadConfig(config.SignStrategyPut))
	applicant := createApplicant(t, db, "jane@example.com")

	err := svc.DeleteAllUploads(context.Background(), applicant.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
}
