package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryBackend 内存存储后端，并发安全
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]*Record
	closed  bool
}

// NewMemoryBackend 创建内存存储后端
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]*Record)}
}

func (b *MemoryBackend) Put(ctx context.Context, rec *Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrStoreClosed
	}
	b.records[rec.Key] = rec.Clone()
	return nil
}

func (b *MemoryBackend) Get(ctx context.Context, key string) (*Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, ErrStoreClosed
	}
	rec, ok := b.records[key]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return rec.Clone(), nil
}

func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrStoreClosed
	}
	delete(b.records, key)
	return nil
}

func (b *MemoryBackend) Keys(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, ErrStoreClosed
	}
	keys := make([]string, 0, len(b.records))
	for k := range b.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.records = make(map[string]*Record)
	return nil
}

var _ IBackend = (*MemoryBackend)(nil)
