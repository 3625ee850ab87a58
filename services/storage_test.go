package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"color_robotics_site/config"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "hello storage"
	key := "exports/leads/2026/01/leads_test.xlsx"
	size := int64(len(content))

	t.Run("UploadReader creates file", func(t *testing.T) {
		result, err := storage.UploadReader(ctx, strings.NewReader(content), key, XLSXContentType, size)
		assert.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, size, result.FileSize)
		assert.Equal(t, "leads_test.xlsx", result.FileName)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("Get retrieves file content", func(t *testing.T) {
		reader, contentType, err := storage.Get(ctx, key)
		assert.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, XLSXContentType, contentType)
	})

	t.Run("Get detects CSV and unknown types", func(t *testing.T) {
		storage.UploadReader(ctx, strings.NewReader("a,b"), "x/leads.csv", "text/csv", 3)
		_, contentType, err := storage.Get(ctx, "x/leads.csv")
		assert.NoError(t, err)
		assert.Equal(t, "text/csv", contentType)

		storage.UploadReader(ctx, strings.NewReader("?"), "x/notes.txt", "text/plain", 1)
		_, contentType, err = storage.Get(ctx, "x/notes.txt")
		assert.NoError(t, err)
		assert.Equal(t, "application/octet-stream", contentType)
	})

	t.Run("Delete removes file", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, key))

		_, err := os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))

		// Deleting twice is not an error
		assert.NoError(t, storage.Delete(ctx, key))
	})

	t.Run("Signed URL is the local path", func(t *testing.T) {
		signed, err := storage.GetSignedURL(ctx, "some/key", time.Hour)
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "some/key"), signed)
	})
}

func TestGenerateExportKey(t *testing.T) {
	now := time.Date(2026, 3, 7, 14, 5, 9, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "exports/leads/2026/03/leads_20260307T190509Z.xlsx", GenerateExportKey(now))
}

func TestIsConfigured(t *testing.T) {
	ls := NewLocalStorage("/tmp")
	assert.True(t, ls.IsConfigured())

	r2 := &R2Storage{bucket: "test-bucket", client: nil}
	assert.False(t, r2.IsConfigured())
}

func TestR2Configured(t *testing.T) {
	cfg := &config.Config{R2AccountID: "acc", R2AccessKeyID: "id", R2SecretAccessKey: "secret"}
	assert.False(t, R2Configured(cfg))

	cfg.R2BucketName = "leads"
	assert.True(t, R2Configured(cfg))
}

func TestNewStorage_FallsBackToLocal(t *testing.T) {
	cfg := &config.Config{ExportDir: t.TempDir()}
	storage := NewStorage(context.Background(), cfg)

	_, ok := storage.(*LocalStorage)
	assert.True(t, ok)
}

func TestR2PublicObjectURL(t *testing.T) {
	r2 := &R2Storage{bucket: "b", publicURL: "https://files.example.com/"}
	assert.Equal(t, "https://files.example.com/exports/a.xlsx", r2.publicObjectURL("exports/a.xlsx"))

	r2.publicURL = ""
	assert.Equal(t, "", r2.publicObjectURL("exports/a.xlsx"))
}
