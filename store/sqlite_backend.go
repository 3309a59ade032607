package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteBackend 基于 modernc.org/sqlite 的存储后端
//
// 表结构：
//
//	doc_key    TEXT PRIMARY KEY
//	kind       TEXT
//	format     TEXT
//	data       BLOB
//	updated_at INTEGER  -- UnixNano
type SQLiteBackend struct {
	db    *sql.DB
	table string
}

// NewSQLiteBackend 打开数据库并确保表存在
// dsn 为文件路径或 ":memory:"；table 为空时使用 ac4y_documents
func NewSQLiteBackend(ctx context.Context, dsn, table string) (*SQLiteBackend, error) {
	if table == "" {
		table = "ac4y_documents"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrStoreFailed, table)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	// 单连接：保证 :memory: 数据库在所有操作间共享，同时串行化写入
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrStoreFailed, err)
	}

	b := &SQLiteBackend{db: db, table: table}
	if err := b.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrStoreFailed, fmt.Errorf("migrate: %w", err))
	}
	return b, nil
}

func (b *SQLiteBackend) migrate(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			doc_key    TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			format     TEXT NOT NULL,
			data       BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`, b.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_kind ON %s(kind)`, b.table, b.table),
	}

	for _, stmt := range statements {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (b *SQLiteBackend) Put(ctx context.Context, rec *Record) error {
	query := fmt.Sprintf(`
	INSERT INTO %s (doc_key, kind, format, data, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(doc_key) DO UPDATE SET
		kind = excluded.kind,
		format = excluded.format,
		data = excluded.data,
		updated_at = excluded.updated_at
	`, b.table)

	_, err := b.db.ExecContext(ctx, query, rec.Key, rec.Kind, rec.Format, rec.Data, rec.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("put %q: %w", rec.Key, err)
	}
	return nil
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) (*Record, error) {
	query := fmt.Sprintf(`SELECT kind, format, data, updated_at FROM %s WHERE doc_key = ?`, b.table)

	rec := &Record{Key: key}
	var updatedAt int64
	err := b.db.QueryRowContext(ctx, query, key).Scan(&rec.Kind, &rec.Format, &rec.Data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	rec.UpdatedAt = time.Unix(0, updatedAt)
	return rec, nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE doc_key = ?`, b.table)
	if _, err := b.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT doc_key FROM %s ORDER BY doc_key`, b.table)

	rows, err := b.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return keys, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

var _ IBackend = (*SQLiteBackend)(nil)
