package record

import (
	"context"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	getMultiFn     func(ctx context.Context, keys []string) ([][]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func newTestRepo(t *testing.T, format string) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo, err := New(ms, "", format)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return repo, ms
}

// kvFixture serves GetMulti/JSONGetMulti from a map.
func kvFixture(data map[string]string) func(context.Context, []string) ([][]byte, error) {
	return func(_ context.Context, keys []string) ([][]byte, error) {
		out := make([][]byte, len(keys))
		for i, k := range keys {
			if v, ok := data[k]; ok {
				out[i] = []byte(v)
			}
		}
		return out, nil
	}
}
