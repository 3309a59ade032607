package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newWithClock[K comparable, V any](config Config[K, V]) (*Cache[K, V], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(config)
	c.now = clock.now
	return c, clock
}

// TestCache_BasicOperations 测试基本操作
func TestCache_BasicOperations(t *testing.T) {
	c := New(Config[string, int]{Name: "test", MaxSize: 100})

	c.Set("key1", 100)
	value, found := c.Get("key1")
	assert.True(t, found)
	assert.Equal(t, 100, value)

	_, found = c.Get("nonexistent")
	assert.False(t, found)

	assert.True(t, c.Delete("key1"))
	_, found = c.Get("key1")
	assert.False(t, found)

	assert.False(t, c.Delete("key1"))
}

func TestCache_Update(t *testing.T) {
	c := New(Config[int64, string]{MaxSize: 100})

	c.Set(1, "first")
	c.Set(1, "second")

	value, found := c.Get(1)
	require.True(t, found)
	assert.Equal(t, "second", value)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "unnamed", c.Name())
}

// TestCache_LRUEviction 超出容量时驱逐最久未使用的条目
func TestCache_LRUEviction(t *testing.T) {
	var evicted []string
	c := New(Config[string, int]{
		MaxSize: 2,
		OnEvict: func(key string, _ int) { evicted = append(evicted, key) },
	})

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a") // a 变为最近使用
	c.Set("c", 3)

	_, found := c.Get("b")
	assert.False(t, found)
	_, found = c.Get("a")
	assert.True(t, found)
	_, found = c.Get("c")
	assert.True(t, found)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestCache_TTL(t *testing.T) {
	c, clock := newWithClock(Config[string, int]{TTL: time.Minute})

	c.Set("k", 1)
	clock.advance(30 * time.Second)
	_, found := c.Get("k")
	require.True(t, found)

	// 访问刷新了过期时间
	clock.advance(45 * time.Second)
	_, found = c.Get("k")
	require.True(t, found)

	clock.advance(time.Minute)
	_, found = c.Get("k")
	assert.False(t, found)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Expires)
	assert.Equal(t, 0, stats.Size)
}

func TestCache_CleanExpired(t *testing.T) {
	c, clock := newWithClock(Config[string, int]{TTL: time.Minute})

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.advance(50 * time.Second)
	c.Set("fresh", 3)
	clock.advance(20 * time.Second)

	assert.Equal(t, 2, c.CleanExpired())
	assert.Equal(t, 1, c.Len())

	_, found := c.Get("fresh")
	assert.True(t, found)

	noTTL := New(Config[string, int]{})
	noTTL.Set("x", 1)
	assert.Equal(t, 0, noTTL.CleanExpired())
}

func TestCache_Clear(t *testing.T) {
	count := 0
	c := New(Config[int, int]{OnEvict: func(int, int) { count++ }})
	for i := 0; i < 5; i++ {
		c.Set(i, i)
	}

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 5, count)
}

func TestCache_Stats(t *testing.T) {
	c := New(Config[string, int]{Name: "stats", MaxSize: 10})
	c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("a")
	_, _ = c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate(), 0.0001)
	assert.Contains(t, c.String(), "Cache[stats]: size=1/10")

	assert.Equal(t, float64(0), Stats{}.HitRate())
}

// TestCache_Concurrent 并发读写不产生数据竞争
func TestCache_Concurrent(t *testing.T) {
	c := New(Config[int, int]{MaxSize: 50})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(base*1000+i, i)
				_, _ = c.Get(base*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
