package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/config"
	"github.com/talentbridge/intake-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func successfulUpload(t *testing.T, db *gorm.DB, applicantID uint) uint {
	t.Helper()
	svc := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
	cred, err := svc.RequestUploadURL(context.Background(), applicantID, "resume.pdf", "application/pdf")
	require.NoError(t, err)
	_, err = svc.CompleteUpload(context.Background(), applicantID, cred.Upload.ID, models.UploadSuccess)
	require.NoError(t, err)
	return cred.Upload.ID
}

func TestSaveDraftLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	applicant := createApplicant(t, db, "jane@example.com")

	_, err := svc.SaveDraft(context.Background(), applicant.ID, datatypes.JSON(`{"name":"Jane"}`), nil)
	require.NoError(t, err)

	uploadID := uint(3)
	_, err = svc.SaveDraft(context.Background(), applicant.ID, datatypes.JSON(`{"name":"Jane D"}`), &uploadID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.DraftSubmission{}).Where("applicant_id = ?", applicant.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	profile, resumeUploadID, isFinal, err := svc.CurrentSubmission(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.False(t, isFinal)
	assert.JSONEq(t, `{"name":"Jane D"}`, string(profile))
	require.NotNil(t, resumeUploadID)
	assert.Equal(t, uploadID, *resumeUploadID)
}

func TestCreateFinalValidatesResumeUpload(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	applicant := createApplicant(t, db, "jane@example.com")
	other := createApplicant(t, db, "other@example.com")

	t.Run("unknown upload", func(t *testing.T) {
		_, err := svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{}`), 999)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("foreign upload", func(t *testing.T) {
		foreignID := successfulUpload(t, db, other.ID)
		_, err := svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{}`), foreignID)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("upload not in SUCCESS", func(t *testing.T) {
		uploads := NewUploadService(db, &fakeObjectStore{}, testUploadConfig(config.SignStrategyPut))
		cred, err := uploads.RequestUploadURL(context.Background(), applicant.ID, "resume.pdf", "application/pdf")
		require.NoError(t, err)

		_, err = svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{}`), cred.Upload.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))

		_, err = uploads.CompleteUpload(context.Background(), applicant.ID, cred.Upload.ID, models.UploadFailure)
		require.NoError(t, err)
		_, err = svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{}`), cred.Upload.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestSubmissionPrecedence(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	applicant := createApplicant(t, db, "jane@example.com")

	// No submission at all.
	profile, _, isFinal, err := svc.CurrentSubmission(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.False(t, isFinal)

	// Draft only.
	_, err = svc.SaveDraft(context.Background(), applicant.ID, datatypes.JSON(`{"stage":"draft"}`), nil)
	require.NoError(t, err)
	profile, _, isFinal, err = svc.CurrentSubmission(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.False(t, isFinal)
	assert.JSONEq(t, `{"stage":"draft"}`, string(profile))

	// Final wins even though the draft row still exists.
	uploadID := successfulUpload(t, db, applicant.ID)
	_, err = svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{"stage":"final"}`), uploadID)
	require.NoError(t, err)

	profile, resumeUploadID, isFinal, err := svc.CurrentSubmission(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.True(t, isFinal)
	assert.JSONEq(t, `{"stage":"final"}`, string(profile))
	require.NotNil(t, resumeUploadID)
	assert.Equal(t, uploadID, *resumeUploadID)

	var draftCount int64
	require.NoError(t, db.Model(&models.DraftSubmission{}).Where("applicant_id = ?", applicant.ID).Count(&draftCount).Error)
	assert.EqualValues(t, 1, draftCount)
}

func TestDraftAfterFinalIsAcceptedButShadowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	applicant := createApplicant(t, db, "jane@example.com")

	uploadID := successfulUpload(t, db, applicant.ID)
	_, err := svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{"stage":"final"}`), uploadID)
	require.NoError(t, err)

	_, err = svc.SaveDraft(context.Background(), applicant.ID, datatypes.JSON(`{"stage":"late-draft"}`), nil)
	require.NoError(t, err)

	profile, _, isFinal, err := svc.CurrentSubmission(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.True(t, isFinal)
	assert.JSONEq(t, `{"stage":"final"}`, string(profile))
}

func TestSecondFinalSubmissionConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	applicant := createApplicant(t, db, "jane@example.com")

	uploadID := successfulUpload(t, db, applicant.ID)
	_, err := svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{}`), uploadID)
	require.NoError(t, err)

	secondUpload := successfulUpload(t, db, applicant.ID)
	_, err = svc.CreateFinal(context.Background(), applicant.ID, datatypes.JSON(`{}`), secondUpload)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
