package memory

import (
	"context"
	"sync"

	"cityverse/internal/app/ports"
	"cityverse/internal/domain/content"
)

type Store struct {
	mu          sync.RWMutex
	shops       []content.Shop
	progression map[string]ports.ProgressionRecord
	outcomes    map[string][]ports.OutcomeRecord
}

func NewStore() *Store {
	return &Store{
		progression: make(map[string]ports.ProgressionRecord),
		outcomes:    make(map[string][]ports.OutcomeRecord),
	}
}

func (s *Store) SeedShops(shops []content.Shop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops = cloneShops(shops)
}

type txKey struct{}

// read and write take the store lock unless the caller already holds it
// through RunInTx.
func (s *Store) read(ctx context.Context, fn func()) {
	if ctx.Value(txKey{}) == s {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if ctx.Value(txKey{}) == s {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func cloneShops(in []content.Shop) []content.Shop {
	out := make([]content.Shop, len(in))
	for i, s := range in {
		s.Items = append([]content.Item(nil), s.Items...)
		out[i] = s
	}
	return out
}
