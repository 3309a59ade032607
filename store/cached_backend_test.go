package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ac4y/cache"
)

// countingBackend 统计 Get 调用次数，可注入 Put 错误
type countingBackend struct {
	IBackend
	gets   int
	putErr error
}

func (c *countingBackend) Get(ctx context.Context, key string) (*Record, error) {
	c.gets++
	return c.IBackend.Get(ctx, key)
}

func (c *countingBackend) Put(ctx context.Context, rec *Record) error {
	if c.putErr != nil {
		return c.putErr
	}
	return c.IBackend.Put(ctx, rec)
}

func TestCachedBackend(t *testing.T) {
	testBackend(t, NewCachedBackend(NewMemoryBackend(), cache.Config[string, *Record]{MaxSize: 16}))
}

// TestCachedBackend_ReadThrough 第二次读取命中缓存
func TestCachedBackend_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingBackend{IBackend: NewMemoryBackend()}
	require.NoError(t, inner.IBackend.Put(ctx, &Record{Key: "k", Data: []byte("v")}))

	b := NewCachedBackend(inner, cache.Config[string, *Record]{MaxSize: 16})

	_, err := b.Get(ctx, "k")
	require.NoError(t, err)
	_, err = b.Get(ctx, "k")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	stats := b.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

// TestCachedBackend_WriteThrough 写入后直接命中缓存
func TestCachedBackend_WriteThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingBackend{IBackend: NewMemoryBackend()}
	b := NewCachedBackend(inner, cache.Config[string, *Record]{MaxSize: 16})

	require.NoError(t, b.Put(ctx, &Record{Key: "k", Data: []byte("v1")}))
	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got.Data)
	assert.Equal(t, 0, inner.gets)
}

func TestCachedBackend_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	b := NewCachedBackend(NewMemoryBackend(), cache.Config[string, *Record]{MaxSize: 16})

	require.NoError(t, b.Put(ctx, &Record{Key: "k", Data: []byte("v")}))
	require.NoError(t, b.Delete(ctx, "k"))

	_, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

// TestCachedBackend_FailedPutDropsEntry 写入失败时丢弃旧缓存
func TestCachedBackend_FailedPutDropsEntry(t *testing.T) {
	ctx := context.Background()
	inner := &countingBackend{IBackend: NewMemoryBackend()}
	b := NewCachedBackend(inner, cache.Config[string, *Record]{MaxSize: 16})

	require.NoError(t, b.Put(ctx, &Record{Key: "k", Data: []byte("v1")}))

	inner.putErr = errors.New("disk full")
	assert.Error(t, b.Put(ctx, &Record{Key: "k", Data: []byte("v2")}))

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got.Data)
	assert.Equal(t, 1, inner.gets)
}

func TestCachedBackend_NotFoundNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &countingBackend{IBackend: NewMemoryBackend()}
	b := NewCachedBackend(inner, cache.Config[string, *Record]{MaxSize: 16})

	_, err := b.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = b.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Equal(t, 2, inner.gets)
}
