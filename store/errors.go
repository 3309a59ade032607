package store

import (
	"errors"

	appErrors "ac4y/errors"
)

// 存储相关错误
var (
	// ErrDocumentNotFound 文档不存在
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidKey 文档键为空
	ErrInvalidKey = errors.New("invalid document key")

	// ErrInvalidDocument 文档为空
	ErrInvalidDocument = errors.New("invalid document")

	// ErrKindMismatch 已存文档类型与目标容器不一致
	ErrKindMismatch = errors.New("document kind mismatch")

	// ErrUnknownDriver 未知的存储驱动
	ErrUnknownDriver = errors.New("unknown store driver")

	// ErrStoreClosed 存储已关闭
	ErrStoreClosed = errors.New("store closed")

	// ErrStoreFailed 底层存储操作失败
	ErrStoreFailed = errors.New("store operation failed")
)

// isSentinel 是否为本包定义的可直接返回的错误
func isSentinel(err error) bool {
	return errors.Is(err, ErrDocumentNotFound) ||
		errors.Is(err, ErrInvalidKey) ||
		errors.Is(err, ErrStoreClosed)
}

func init() {
	appErrors.RegisterCode(ErrDocumentNotFound, appErrors.ErrCodeNotFound, "文档未找到")
	for _, err := range []error{ErrKindMismatch, ErrInvalidKey, ErrInvalidDocument, ErrUnknownDriver} {
		appErrors.RegisterCode(err, appErrors.ErrCodeInvalidInput, "无效的存储请求")
	}
	appErrors.RegisterCode(ErrStoreFailed, appErrors.ErrCodeDatabase, "文档存储失败")
	appErrors.RegisterCode(ErrStoreClosed, appErrors.ErrCodeDatabase, "文档存储失败")
}
