package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/mdrender/pkg/ports"
)

// MockCache is a map-backed RenderCache for testing the contract itself.
type MockCache struct {
	data map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key string, markdown string) error {
	m.data[key] = markdown
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestRenderCache_Contract(t *testing.T) {
	ports.RunRenderCacheContract(t, NewMockCache())
}
