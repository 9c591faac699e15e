// Package memory keeps application state in process memory. It backs the
// tests and STATE_BACKEND=memory.
package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/state"
)

type StateRepository struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data map[string][]byte
}

var (
	_ state.Repository = (*StateRepository)(nil)
	_ state.Transactor = (*StateRepository)(nil)
)

func NewStateRepository() *StateRepository {
	return &StateRepository{data: make(map[string][]byte)}
}

// Get implements state.Repository.
func (s *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, state.ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

// Set implements state.Repository. Inside WithinTx the previous value is
// journaled so a rollback can restore it.
func (s *StateRepository) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := ctx.Value(journalKey{}).(*journal); ok && j.repo == s {
		if _, seen := j.prev[key]; !seen {
			old, existed := s.data[key]
			j.prev[key] = previous{value: old, existed: existed}
		}
	}

	s.data[key] = append([]byte(nil), value...)
	return nil
}

type journalKey struct{}

type previous struct {
	value   []byte
	existed bool
}

// journal holds the values a transaction overwrote.
type journal struct {
	repo *StateRepository
	prev map[string]previous
}

// WithinTx implements state.Transactor. Transactions are serialized; a
// failing fn restores only the keys written through its context, so writes
// made outside the transaction survive the rollback.
func (s *StateRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{repo: s, prev: make(map[string]previous)}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		s.mu.Lock()
		for key, p := range j.prev {
			if p.existed {
				s.data[key] = p.value
			} else {
				delete(s.data, key)
			}
		}
		s.mu.Unlock()
		return err
	}
	return nil
}
