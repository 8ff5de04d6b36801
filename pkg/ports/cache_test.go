package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/overlay/pkg/ports"
)

// MockCache is a map-backed PageCache used to check the contract itself.
type MockCache struct {
	data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestMockCache_Contract(t *testing.T) {
	ports.RunPageCacheContract(t, NewMockCache())
}
