package handlers

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/services"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, in services.AnalyzeInput) (*services.Outcome, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*services.Outcome)
	return out, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) SaveFile(file *multipart.FileHeader, fileType string) (string, error) {
	args := m.Called(file, fileType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockStorage) GetFilePath(key string) string {
	return m.Called(key).String(0)
}

func (m *mockStorage) DeleteFile(key string) error {
	return m.Called(key).Error(0)
}

func (m *mockStorage) EnsureUploadDir() error {
	return m.Called().Error(0)
}

type mockDocumentRepo struct {
	mock.Mock
}

func (m *mockDocumentRepo) Create(ctx context.Context, document *models.Document) error {
	return m.Called(ctx, document).Error(0)
}

func (m *mockDocumentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(*models.Document)
	return doc, args.Error(1)
}

func (m *mockDocumentRepo) FindByPath(ctx context.Context, filePath string) (*models.Document, error) {
	args := m.Called(ctx, filePath)
	doc, _ := args.Get(0).(*models.Document)
	return doc, args.Error(1)
}

type mockAnalysisRepo struct {
	mock.Mock
}

func (m *mockAnalysisRepo) Create(ctx context.Context, analysis *models.Analysis) error {
	return m.Called(ctx, analysis).Error(0)
}

func (m *mockAnalysisRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*models.Analysis)
	return rec, args.Error(1)
}

func (m *mockAnalysisRepo) ListByFilePath(ctx context.Context, filePath string, limit int) ([]models.Analysis, error) {
	args := m.Called(ctx, filePath, limit)
	recs, _ := args.Get(0).([]models.Analysis)
	return recs, args.Error(1)
}
