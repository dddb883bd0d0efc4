package highscore

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps scores for the life of the process.
type MemoryStore struct {
	mu     sync.Mutex
	keep   int
	scores []int
}

// NewMemoryStore keeps the best keep scores.
func NewMemoryStore(keep int) *MemoryStore {
	return &MemoryStore{keep: keep}
}

func (m *MemoryStore) Submit(_ context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = best(append(m.scores, score), m.keep)
	return nil
}

func (m *MemoryStore) Top(_ context.Context, n int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return best(slices.Clone(m.scores), n), nil
}

func (m *MemoryStore) Close() error { return nil }
