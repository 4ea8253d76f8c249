package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/landlease/internal/common"
)

// MemoryStore keeps records in process memory. Update holds an exclusive
// lock for the whole transaction and applies buffered writes on success.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[Key][]byte
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[Key][]byte)}
}

func (s *MemoryStore) Update(ctx context.Context, fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("memory store is closed")
	}

	tx := &memoryTxn{store: s, writes: make(map[Key][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for k, v := range tx.writes {
		s.records[k] = v
	}
	return nil
}

func (s *MemoryStore) View(ctx context.Context, fn TxFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("memory store is closed")
	}

	return fn(ctx, &memoryTxn{store: s, readOnly: true})
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type memoryTxn struct {
	store    *MemoryStore
	writes   map[Key][]byte
	readOnly bool
}

func (t *memoryTxn) Get(_ context.Context, key Key) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return clone(v), nil
	}
	v, ok := t.store.records[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, common.ErrNotFound)
	}
	return clone(v), nil
}

func (t *memoryTxn) Set(_ context.Context, key Key, value []byte) error {
	if t.readOnly {
		return fmt.Errorf("set %s: read-only transaction", key)
	}
	t.writes[key] = clone(value)
	return nil
}

func (t *memoryTxn) Scan(_ context.Context, kind Kind, fn func(Key, []byte) error) error {
	seen := make(map[uint64]struct{})
	var ids []uint64
	collect := func(m map[Key][]byte) {
		for k := range m {
			if k.Kind != kind {
				continue
			}
			if _, ok := seen[k.ID]; ok {
				continue
			}
			seen[k.ID] = struct{}{}
			ids = append(ids, k.ID)
		}
	}
	collect(t.store.records)
	collect(t.writes)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		key := Key{Kind: kind, ID: id}
		v, ok := t.writes[key]
		if !ok {
			v = t.store.records[key]
		}
		if err := fn(key, clone(v)); err != nil {
			return err
		}
	}
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
