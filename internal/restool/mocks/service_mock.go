package mocks

import (
	"context"
	"sync"

	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
)

// MockLister はListerのモック実装です。
// 並列処理のテストでも使うため、呼び出し回数はミューテックスで保護します。
type MockLister struct {
	Infos     []models.EntryInfo
	Error     error
	CallCount int
	Paths     []string
	mu        sync.Mutex
}

// List はモック実装です
func (m *MockLister) List(ctx context.Context, archivePath string) ([]models.EntryInfo, error) {
	m.mu.Lock()
	m.CallCount++
	m.Paths = append(m.Paths, archivePath)
	m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Infos, nil
}

// MockExtractor はExtractorのモック実装です
type MockExtractor struct {
	Stats     *models.ExtractStats
	Error     error
	CallCount int
	LastDir   string
	mu        sync.Mutex
}

// Extract はモック実装です
func (m *MockExtractor) Extract(ctx context.Context, archivePath, outputDir string, opts models.ExtractOptions) (*models.ExtractStats, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastDir = outputDir
	m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Stats, nil
}

// MockReplacer はReplacerのモック実装です
type MockReplacer struct {
	Result         *models.ReplaceResult
	Error          error
	CallCount      int
	LastSpec       models.ReplaceSpec
	LastIdentifier uint32
}

// Replace はモック実装です
func (m *MockReplacer) Replace(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions) (*models.ReplaceResult, error) {
	m.CallCount++
	m.LastSpec = spec
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Result, nil
}

// ReplaceWithIdentifier はモック実装です
func (m *MockReplacer) ReplaceWithIdentifier(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions, identifier uint32) (*models.ReplaceResult, error) {
	m.LastIdentifier = identifier
	return m.Replace(ctx, archivePath, spec, opts)
}

// ReplaceBatch はモック実装です
func (m *MockReplacer) ReplaceBatch(ctx context.Context, archivePath string, specs []models.ReplaceSpec, opts models.ReplaceOptions) ([]models.ReplaceResult, error) {
	var results []models.ReplaceResult
	for _, spec := range specs {
		result, err := m.Replace(ctx, archivePath, spec, opts)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}
