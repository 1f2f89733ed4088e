package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("cv", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["cv"][0]
}

func TestStorage_SaveAndDownload(t *testing.T) {
	root := t.TempDir()
	storage := NewStorageService(root)
	require.NoError(t, storage.EnsureUploadDir())

	key, err := storage.SaveFile(formFile(t, "Jane CV.TXT", []byte("logistics")), "cv")
	require.NoError(t, err)

	assert.Regexp(t, `^cv_[0-9a-f-]{36}\.txt$`, key)
	assert.FileExists(t, filepath.Join(root, key))

	data, err := storage.Download(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "logistics", string(data))

	require.NoError(t, storage.DeleteFile(key))
	assert.NoFileExists(t, filepath.Join(root, key))
}

func TestStorage_SaveRejectsUnsupportedExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	_, err := storage.SaveFile(formFile(t, "cv.exe", []byte("MZ")), "cv")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestStorage_DownloadErrors(t *testing.T) {
	root := t.TempDir()
	storage := NewStorageService(root)
	require.NoError(t, os.WriteFile(filepath.Join(root, "cv_ok.txt"), []byte("ok"), 0o644))

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "   ", ErrInvalidPath},
		{"absolute", "/etc/passwd", ErrInvalidPath},
		{"parent", "..", ErrInvalidPath},
		{"traversal", "../../etc/passwd", ErrInvalidPath},
		{"nested traversal", "a/../../secret.txt", ErrInvalidPath},
		{"missing", "cv_missing.pdf", ErrDocumentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.Download(context.Background(), tt.key)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStorage_DownloadHonoursCancelledContext(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.Download(ctx, "cv_ok.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
