package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPath         = errors.New("invalid document path")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrAccessDenied        = errors.New("document access denied")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
}

// StorageService stores uploaded documents under a root directory.
// Documents are addressed by keys relative to that root.
type StorageService interface {
	SaveFile(file *multipart.FileHeader, fileType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	GetFilePath(key string) string
	DeleteFile(key string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile copies an uploaded file into storage and returns its key.
func (s *storageService) SaveFile(file *multipart.FileHeader, fileType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	key := fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.GetFilePath(key))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return key, nil
}

// Download reads the document stored under key.
func (s *storageService) Download(ctx context.Context, key string) ([]byte, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.uploadPath, cleaned))
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	case errors.Is(err, os.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, key)
	default:
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}
}

func (s *storageService) GetFilePath(key string) string {
	return filepath.Join(s.uploadPath, key)
}

func (s *storageService) DeleteFile(key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(s.GetFilePath(cleaned)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// cleanKey rejects empty keys, absolute paths and keys escaping the storage root.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if filepath.IsAbs(key) || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: absolute path %q", ErrInvalidPath, key)
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes storage root", ErrInvalidPath, key)
	}

	return cleaned, nil
}
