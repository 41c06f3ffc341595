package ranking

import (
	"context"
	"sync"
)

// MockRanker returns a fixed list or error and records the labels it was asked about.
type MockRanker struct {
	IDs []string
	Err error

	mu     sync.Mutex
	Labels []string
}

func (m *MockRanker) TopProperties(ctx context.Context, entityLabel string, top int) ([]string, error) {
	m.mu.Lock()
	m.Labels = append(m.Labels, entityLabel)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if top > 0 && len(m.IDs) > top {
		return m.IDs[:top], nil
	}
	return m.IDs, nil
}
