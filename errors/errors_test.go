package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ac4y/logging"
)

var (
	errTestMissing  = errors.New("test: missing")
	errTestBadInput = errors.New("test: bad input")
	errTestBackend  = errors.New("test: backend failed")
)

func init() {
	RegisterCode(errTestMissing, ErrCodeNotFound, "未找到")
	RegisterCode(errTestBadInput, ErrCodeInvalidInput, "无效输入")
	RegisterCode(errTestBackend, ErrCodeDatabase, "存储失败")
	RegisterCode(nil, ErrCodeInternal, "ignored")
}

func TestAppError(t *testing.T) {
	err := NewError(ErrCodeNotFound, "文档未找到")

	assert.Equal(t, ErrCodeNotFound, err.Code())
	assert.Equal(t, "文档未找到", err.Message())
	assert.Nil(t, err.Cause())
	assert.Equal(t, "[NOT_FOUND] 文档未找到", err.Error())
	assert.NotEmpty(t, err.Stack())
	assert.Empty(t, err.Details())
}

func TestWrapError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(cause, ErrCodeDatabase, "保存失败")

	assert.Equal(t, "[DATABASE_ERROR] 保存失败: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Nil(t, WrapError(nil, ErrCodeDatabase, "x"))
}

// TestAppError_IsByCode 同错误码的 AppError 视为相同
func TestAppError_IsByCode(t *testing.T) {
	err := WrapError(errors.New("x"), ErrCodeNotFound, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrDatabase)
}

func TestAppError_WithContext(t *testing.T) {
	base := NewError(ErrCodeInvalidInput, "bad")
	withKey := base.WithContext("key", "k1")

	assert.Equal(t, "k1", withKey.Details()["key"])
	assert.Empty(t, base.Details())
	assert.Equal(t, base.Code(), withKey.Code())
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
	assert.Equal(t, ErrCodeInternal, GetErrorCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewError(ErrCodeTimeout, "slow"))
	assert.Equal(t, ErrCodeTimeout, GetErrorCode(wrapped))
	assert.True(t, IsErrorCode(wrapped, ErrCodeTimeout))
	assert.False(t, IsErrorCode(nil, ErrCodeTimeout))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    ErrorCode
		message string
	}{
		{"sentinel", errTestMissing, ErrCodeNotFound, "未找到"},
		{"wrapped", fmt.Errorf("load %q: %w", "k", errTestMissing), ErrCodeNotFound, "未找到"},
		{"joined", errors.Join(errTestBadInput, errors.New("eof")), ErrCodeInvalidInput, "无效输入"},
		{"first registered wins", errors.Join(errTestBackend, errTestMissing), ErrCodeNotFound, "未找到"},
		{"backend", errors.Join(errTestBackend, errors.New("io")), ErrCodeDatabase, "存储失败"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			normalized := Normalize(tc.err)
			require.Error(t, normalized)
			assert.Equal(t, tc.code, GetErrorCode(normalized))
			assert.ErrorIs(t, normalized, tc.err)

			appErr, ok := normalized.(IError)
			require.True(t, ok)
			assert.Equal(t, tc.message, appErr.Message())
		})
	}
}

func TestNormalize_Passthrough(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, Normalize(plain))

	app := NewError(ErrCodeTimeout, "slow")
	assert.Same(t, app, Normalize(app))
}

func TestWrap(t *testing.T) {
	original := logging.GetLogger()
	defer logging.SetLogger(original)
	logging.SetLogger(logging.NewNoopLogger())

	ctx := context.Background()
	assert.Nil(t, Wrap(ctx, nil, ErrCodeInternal, "x"))

	// 已识别的哨兵错误保留其错误码
	err := Wrap(ctx, errTestMissing, ErrCodeInternal, "读取文档")
	assert.Equal(t, ErrCodeNotFound, GetErrorCode(err))
	assert.ErrorIs(t, err, errTestMissing)

	err = Wrap(ctx, errors.New("plain"), ErrCodeNetwork, "调用失败")
	assert.Equal(t, ErrCodeNetwork, GetErrorCode(err))
}

func TestWrapWithLog(t *testing.T) {
	original := logging.GetLogger()
	defer logging.SetLogger(original)

	var buf bytes.Buffer
	logging.SetLogger(logging.NewWriterLogger(&buf, "", logging.DebugLevel))

	err := WrapWithLog(context.Background(), errors.New("io"), ErrCodeDatabase, "保存失败", logging.String("key", "k"))
	assert.Equal(t, ErrCodeDatabase, GetErrorCode(err))
	assert.Contains(t, buf.String(), "[WARN] 保存失败 error=io error_code=DATABASE_ERROR")
	assert.Contains(t, buf.String(), "key=k")

	assert.Nil(t, WrapWithLog(context.Background(), nil, ErrCodeDatabase, "x"))
}
