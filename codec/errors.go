package codec

import (
	"errors"

	appErrors "ac4y/errors"
)

// 编解码相关错误
var (
	// ErrInvalidDocument 文档为空
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyData 待解码数据为空
	ErrEmptyData = errors.New("empty data")

	// ErrUnknownFormat 未知的编码格式
	ErrUnknownFormat = errors.New("unknown format")

	// ErrSerializationFailed 序列化失败
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrDeserializationFailed 反序列化失败
	ErrDeserializationFailed = errors.New("deserialization failed")
)

func init() {
	for _, err := range []error{ErrUnknownFormat, ErrInvalidDocument, ErrEmptyData, ErrDeserializationFailed} {
		appErrors.RegisterCode(err, appErrors.ErrCodeInvalidInput, "无效的文档内容")
	}
	appErrors.RegisterCode(ErrSerializationFailed, appErrors.ErrCodeInternal, "文档编码失败")
}
