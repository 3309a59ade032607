package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient 仅包含本后端使用的 go-redis 命令（便于测试替换）
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// RedisConfig Redis 后端配置
type RedisConfig struct {
	// Client 外部提供的客户端，设置后忽略连接参数，且 Close 不会关闭它
	Client redis.UniversalClient

	Addr     string
	Username string
	Password string
	DB       int

	// Prefix 键前缀，默认 "ac4y:doc:"
	Prefix string

	// ScanCount 每次 SCAN 的提示数量，默认 100
	ScanCount int64
}

// globEscaper 转义 SCAN MATCH 模式中的通配字符，使前缀按字面匹配
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// RedisBackend 基于 Redis 字符串键的存储后端
// 每条记录以 JSON 形式保存在 <Prefix><key> 下
type RedisBackend struct {
	client    redisClient
	ownClient bool
	prefix    string
	scanCount int64
}

// redisRecord Redis 中保存的记录格式
type redisRecord struct {
	Kind      string `json:"kind"`
	Format    string `json:"format"`
	Data      []byte `json:"data"`
	UpdatedAt int64  `json:"updated_at"`
}

// NewRedisBackend 创建 Redis 后端并检查连通性
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	var (
		client redis.UniversalClient
		own    bool
	)
	if cfg.Client != nil {
		client = cfg.Client
	} else {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("%w: redis addr is empty", ErrStoreFailed)
		}
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		own = true
	}

	if err := client.Ping(ctx).Err(); err != nil {
		if own {
			_ = client.Close()
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}

	b := newRedisBackend(client, cfg.Prefix, cfg.ScanCount)
	b.ownClient = own
	return b, nil
}

func newRedisBackend(client redisClient, prefix string, scanCount int64) *RedisBackend {
	if prefix == "" {
		prefix = "ac4y:doc:"
	}
	if scanCount <= 0 {
		scanCount = 100
	}
	return &RedisBackend{client: client, prefix: prefix, scanCount: scanCount}
}

func (b *RedisBackend) Put(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(redisRecord{
		Kind:      rec.Kind,
		Format:    rec.Format,
		Data:      rec.Data,
		UpdatedAt: rec.UpdatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("encode record %q: %w", rec.Key, err)
	}
	if err := b.client.Set(ctx, b.prefix+rec.Key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", rec.Key, err)
	}
	return nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) (*Record, error) {
	raw, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	var rr redisRecord
	if err := json.Unmarshal(raw, &rr); err != nil {
		return nil, fmt.Errorf("decode record %q: %w", key, err)
	}
	return &Record{
		Key:       key,
		Kind:      rr.Kind,
		Format:    rr.Format,
		Data:      rr.Data,
		UpdatedAt: time.Unix(0, rr.UpdatedAt),
	}, nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.prefix+key).Err(); err != nil {
		return fmt.Errorf("del %q: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	match := globEscaper.Replace(b.prefix) + "*"
	var cursor uint64
	for {
		page, next, err := b.client.Scan(ctx, cursor, match, b.scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for _, k := range page {
			if key, ok := strings.CutPrefix(k, b.prefix); ok {
				seen[key] = struct{}{}
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	// SCAN 可能重复返回同一个键
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *RedisBackend) Close() error {
	if b.ownClient {
		return b.client.Close()
	}
	return nil
}

var _ IBackend = (*RedisBackend)(nil)
