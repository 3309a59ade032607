// Package store 按键持久化编码后的列表文档
//
// 分层：
//   - IBackend 只处理 Record（已编码的字节），有内存、SQLite、Redis 三种实现，
//     以及基于 LRU 缓存的装饰器 CachedBackend
//   - DocumentStore 负责文档与 Record 之间的编解码及类型检查
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ac4y/codec"
	"ac4y/domain/list"
	appErrors "ac4y/errors"
	"ac4y/logging"
)

// Record 已编码的文档记录
type Record struct {
	Key       string
	Kind      string // 文档根元素名称
	Format    string // 编码格式
	Data      []byte
	UpdatedAt time.Time
}

// Clone 深拷贝
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Data = append([]byte(nil), r.Data...)
	return &cp
}

// IBackend 记录存储后端
type IBackend interface {
	// Put 写入记录（存在则覆盖）
	Put(ctx context.Context, rec *Record) error

	// Get 读取记录，不存在时返回 ErrDocumentNotFound
	Get(ctx context.Context, key string) (*Record, error)

	// Delete 删除记录，不存在不视为错误
	Delete(ctx context.Context, key string) error

	// Keys 返回全部键（已排序）
	Keys(ctx context.Context) ([]string, error)

	// Close 释放连接
	Close() error
}

// NewKey 生成随机文档键
func NewKey() string {
	return uuid.NewString()
}

// DocumentStore 文档存储
type DocumentStore struct {
	backend IBackend
	codec   codec.ICodec
	logger  logging.Logger
	now     func() time.Time
}

// New 创建文档存储
// codec 为 nil 时使用 XML；logger 为 nil 时使用全局 Logger
func New(backend IBackend, c codec.ICodec, logger logging.Logger) *DocumentStore {
	if c == nil {
		c = codec.NewXMLCodec(false)
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &DocumentStore{
		backend: backend,
		codec:   c,
		logger:  logger.WithFields(logging.String("component", "document_store")),
		now:     time.Now,
	}
}

// Codec 写入时使用的编解码器
func (s *DocumentStore) Codec() codec.ICodec {
	return s.codec
}

// Save 编码并保存文档
func (s *DocumentStore) Save(ctx context.Context, key string, doc list.IDocument) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if doc == nil {
		return ErrInvalidDocument
	}

	data, err := s.codec.Encode(doc)
	if err != nil {
		return err
	}

	rec := &Record{
		Key:       key,
		Kind:      doc.RootName(),
		Format:    s.codec.Format(),
		Data:      data,
		UpdatedAt: s.now(),
	}
	if err := s.backend.Put(ctx, rec); err != nil {
		return s.wrap(ctx, "save", key, err)
	}

	s.logger.Debug(ctx, "document saved",
		logging.String("key", key),
		logging.String("kind", rec.Kind),
		logging.Int("items", doc.Len()),
	)
	return nil
}

// Load 读取文档并解码到 doc，文档类型必须一致
func (s *DocumentStore) Load(ctx context.Context, key string, doc list.IDocument) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if doc == nil {
		return ErrInvalidDocument
	}

	rec, err := s.backend.Get(ctx, key)
	if err != nil {
		return s.wrap(ctx, "load", key, err)
	}
	if rec.Kind != doc.RootName() {
		return fmt.Errorf("%w: %q holds %s, requested %s", ErrKindMismatch, key, rec.Kind, doc.RootName())
	}
	return s.decode(ctx, rec, doc)
}

// LoadNew 读取文档，按记录中的类型创建容器
func (s *DocumentStore) LoadNew(ctx context.Context, key string) (list.IDocument, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	rec, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, s.wrap(ctx, "load", key, err)
	}

	doc, err := list.New(rec.Kind)
	if err != nil {
		return nil, err
	}
	if err := s.decode(ctx, rec, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete 删除文档
func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		return s.wrap(ctx, "delete", key, err)
	}
	return nil
}

// Keys 返回全部文档键
func (s *DocumentStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		return nil, s.wrap(ctx, "keys", "", err)
	}
	return keys, nil
}

// Close 关闭底层存储
func (s *DocumentStore) Close() error {
	return s.backend.Close()
}

// decode 按记录自身的格式解码，兼容以其他格式写入的记录
func (s *DocumentStore) decode(ctx context.Context, rec *Record, doc list.IDocument) error {
	c := s.codec
	if rec.Format != c.Format() {
		var err error
		if c, err = codec.ForFormat(rec.Format); err != nil {
			return err
		}
	}
	if err := c.Decode(rec.Data, doc); err != nil {
		return err
	}

	s.logger.Debug(ctx, "document loaded",
		logging.String("key", rec.Key),
		logging.String("kind", rec.Kind),
		logging.String("format", rec.Format),
		logging.Int("items", doc.Len()),
	)
	return nil
}

// wrap 本包哨兵错误原样返回；后端错误附加 ErrStoreFailed 并包装为 DATABASE_ERROR
func (s *DocumentStore) wrap(ctx context.Context, op, key string, err error) error {
	if isSentinel(err) {
		return err
	}
	return appErrors.WrapWithLog(ctx, errors.Join(ErrStoreFailed, err), appErrors.ErrCodeDatabase,
		"document store operation failed",
		logging.String("component", "document_store"),
		logging.String("op", op),
		logging.String("key", key),
	)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
