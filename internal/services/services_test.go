package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/intake-backend/internal/config"
	"github.com/talentbridge/intake-backend/internal/models"
	"github.com/talentbridge/intake-backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Applicant{},
		&models.Upload{},
		&models.Submission{},
		&models.DraftSubmission{},
		&models.Opportunity{},
	))
	return db
}

func createApplicant(t *testing.T, db *gorm.DB, email string) *models.Applicant {
	t.Helper()
	applicant, err := NewApplicantService(db).Create(context.Background(), email)
	require.NoError(t, err)
	return applicant
}

// fakeObjectStore records signing and deletion calls.
type fakeObjectStore struct {
	putKeys         []string
	postKeys        []string
	getKeys         []string
	deletedPrefixes []string
	failDelete      error
}

func (f *fakeObjectStore) SignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	f.putKeys = append(f.putKeys, key)
	return "https://store.test/put/" + key, nil
}

func (f *fakeObjectStore) SignPost(_ context.Context, key, _ string, _ time.Duration) (*storage.PresignedPost, error) {
	f.postKeys = append(f.postKeys, key)
	return &storage.PresignedPost{
		URL:    "https://store.test/post",
		Fields: map[string]string{"key": key},
	}, nil
}

func (f *fakeObjectStore) SignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	f.getKeys = append(f.getKeys, key)
	return "https://store.test/get/" + key, nil
}

func (f *fakeObjectStore) DeletePrefix(_ context.Context, prefix string) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	return nil
}

func testUploadConfig(strategy config.UploadSignStrategy) *config.Config {
	return &config.Config{
		UploadSignStrategy: strategy,
		UploadURLTTL:       15 * time.Minute,
		DownloadURLTTL:     5 * time.Minute,
	}
}
