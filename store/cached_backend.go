package store

import (
	"context"

	"ac4y/cache"
)

// CachedBackend 带 LRU 读缓存的后端装饰器
// 读穿透、写穿透；删除时使缓存失效
type CachedBackend struct {
	next  IBackend
	cache *cache.Cache[string, *Record]
}

// NewCachedBackend 创建缓存装饰器
func NewCachedBackend(next IBackend, config cache.Config[string, *Record]) *CachedBackend {
	if config.Name == "" {
		config.Name = "document_records"
	}
	return &CachedBackend{
		next:  next,
		cache: cache.New(config),
	}
}

func (b *CachedBackend) Put(ctx context.Context, rec *Record) error {
	if err := b.next.Put(ctx, rec); err != nil {
		// 写入结果未知，丢弃可能过时的缓存
		b.cache.Delete(rec.Key)
		return err
	}
	b.cache.Set(rec.Key, rec.Clone())
	return nil
}

func (b *CachedBackend) Get(ctx context.Context, key string) (*Record, error) {
	if rec, ok := b.cache.Get(key); ok {
		return rec.Clone(), nil
	}

	rec, err := b.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	b.cache.Set(key, rec.Clone())
	return rec, nil
}

func (b *CachedBackend) Delete(ctx context.Context, key string) error {
	b.cache.Delete(key)
	return b.next.Delete(ctx, key)
}

func (b *CachedBackend) Keys(ctx context.Context) ([]string, error) {
	return b.next.Keys(ctx)
}

func (b *CachedBackend) Close() error {
	b.cache.Clear()
	return b.next.Close()
}

// Stats 缓存统计
func (b *CachedBackend) Stats() cache.Stats {
	return b.cache.Stats()
}

var _ IBackend = (*CachedBackend)(nil)
