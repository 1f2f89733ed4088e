package services

import (
	"context"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
)

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

type mockAnalysisRepo struct {
	mock.Mock

	mu      sync.Mutex
	created []*models.Analysis
}

func (m *mockAnalysisRepo) Create(ctx context.Context, analysis *models.Analysis) error {
	err := m.Called(ctx, analysis).Error(0)
	if err == nil {
		m.mu.Lock()
		m.created = append(m.created, analysis)
		m.mu.Unlock()
	}
	return err
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

func (m *mockAnalysisRepo) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

type mockTextCache struct {
	mock.Mock
}

func (m *mockTextCache) Get(ctx context.Context, key string) (CachedText, error) {
	args := m.Called(ctx, key)
	text, _ := args.Get(0).(CachedText)
	return text, args.Error(1)
}

func (m *mockTextCache) Set(ctx context.Context, key string, text CachedText) error {
	return m.Called(ctx, key, text).Error(0)
}

type memoryTextCache struct {
	mu      sync.Mutex
	entries map[string]CachedText
}

func newMemoryTextCache() *memoryTextCache {
	return &memoryTextCache{entries: make(map[string]CachedText)}
}

func (m *memoryTextCache) Get(_ context.Context, key string) (CachedText, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.entries[key]
	if !ok {
		return CachedText{}, ErrTextNotCached
	}
	return text, nil
}

func (m *memoryTextCache) Set(_ context.Context, key string, text CachedText) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = text
	return nil
}

type mockPersistWorker struct {
	mock.Mock
}

func (m *mockPersistWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockPersistWorker) Stop() {
	m.Called()
}

func (m *mockPersistWorker) Enqueue(record *models.Analysis) bool {
	return m.Called(record).Bool(0)
}
