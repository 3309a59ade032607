// Package cache 提供泛型 LRU 缓存
//
// 特性：
//   - 容量上限，超出时驱逐最久未使用的条目
//   - 可选 TTL，基于最后访问时间过期
//   - 并发安全
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// Config 缓存配置
type Config[K comparable, V any] struct {
	// Name 缓存名称（用于日志和统计）
	Name string

	// MaxSize 最大条目数，0 表示不限制
	MaxSize int

	// TTL 过期时间，基于最后访问时间；0 表示永不过期
	TTL time.Duration

	// OnEvict 条目被驱逐、过期或删除时回调（持锁调用，不可重入缓存）
	OnEvict func(key K, value V)
}

// Stats 缓存统计
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Expires   int64
	Size      int
}

// HitRate 命中率
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	accessedAt time.Time
}

// Cache 泛型 LRU 缓存
type Cache[K comparable, V any] struct {
	config Config[K, V]

	mu    sync.Mutex
	items map[K]*list.Element // value: *entry[K, V]
	lru   *list.List          // 最近使用的在前
	stats Stats

	now func() time.Time
}

// New 创建缓存
func New[K comparable, V any](config Config[K, V]) *Cache[K, V] {
	if config.Name == "" {
		config.Name = "unnamed"
	}
	return &Cache[K, V]{
		config: config,
		items:  make(map[K]*list.Element),
		lru:    list.New(),
		now:    time.Now,
	}
}

// Name 缓存名称
func (c *Cache[K, V]) Name() string {
	return c.config.Name
}

// Get 获取缓存值，未命中或已过期时 found 为 false
// 命中会刷新访问时间与 LRU 位置，因此使用写锁
func (c *Cache[K, V]) Get(key K) (value V, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return value, false
	}

	e := elem.Value.(*entry[K, V])
	now := c.now()
	if c.expired(e, now) {
		c.remove(elem)
		c.stats.Misses++
		c.stats.Expires++
		return value, false
	}

	e.accessedAt = now
	c.lru.MoveToFront(elem)
	c.stats.Hits++
	return e.value, true
}

// Set 写入或更新缓存值
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[K, V])
		e.value = value
		e.accessedAt = now
		c.lru.MoveToFront(elem)
		return
	}

	if c.config.MaxSize > 0 && len(c.items) >= c.config.MaxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
			c.stats.Evictions++
		}
	}

	c.items[key] = c.lru.PushFront(&entry[K, V]{key: key, value: value, accessedAt: now})
}

// Delete 删除条目，返回是否存在
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.remove(elem)
	return true
}

// Clear 清空缓存
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.lru.Front(); elem != nil; {
		next := elem.Next()
		c.remove(elem)
		elem = next
	}
}

// CleanExpired 清理过期条目，返回清理数量
func (c *Cache[K, V]) CleanExpired() int {
	if c.config.TTL <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cleaned := 0
	// 从最久未使用的一端开始，遇到未过期条目即可停止
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if !c.expired(elem.Value.(*entry[K, V]), now) {
			break
		}
		c.remove(elem)
		cleaned++
		elem = prev
	}
	c.stats.Expires += int64(cleaned)
	return cleaned
}

// Len 当前条目数
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats 统计信息副本
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = len(c.items)
	return stats
}

// String 返回缓存信息的字符串表示
func (c *Cache[K, V]) String() string {
	stats := c.Stats()
	return fmt.Sprintf("Cache[%s]: size=%d/%d, hits=%d, misses=%d, hit_rate=%.2f%%, evictions=%d, expires=%d",
		c.config.Name,
		stats.Size,
		c.config.MaxSize,
		stats.Hits,
		stats.Misses,
		stats.HitRate()*100,
		stats.Evictions,
		stats.Expires,
	)
}

// expired 需要持锁调用
func (c *Cache[K, V]) expired(e *entry[K, V], now time.Time) bool {
	return c.config.TTL > 0 && now.Sub(e.accessedAt) >= c.config.TTL
}

// remove 需要持锁调用
func (c *Cache[K, V]) remove(elem *list.Element) {
	e := elem.Value.(*entry[K, V])
	c.lru.Remove(elem)
	delete(c.items, e.key)
	if c.config.OnEvict != nil {
		c.config.OnEvict(e.key, e.value)
	}
}
