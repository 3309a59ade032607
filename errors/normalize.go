package errors

import (
	stdErrors "errors"
	"sync"
)

// codeMapping 哨兵错误到错误码的映射
type codeMapping struct {
	target  error
	code    ErrorCode
	message string
}

var (
	mappingsMu sync.RWMutex
	mappings   []codeMapping
)

// RegisterCode 注册哨兵错误对应的错误码与消息
//
// 各层在 init 中登记本层的哨兵错误，本包不依赖任何业务包。
// Normalize 按登记顺序匹配，先登记者优先。
func RegisterCode(target error, code ErrorCode, message string) {
	if target == nil {
		return
	}

	mappingsMu.Lock()
	defer mappingsMu.Unlock()
	mappings = append(mappings, codeMapping{target: target, code: code, message: message})
}

// Normalize 将已登记的哨兵错误规范化为 AppError
//
// 注意：
//   - 已经是 IError 的错误原样返回
//   - 未识别的错误保持原样，交由调用方决定是否 Wrap
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(IError); ok {
		return err
	}

	mappingsMu.RLock()
	defer mappingsMu.RUnlock()
	for _, m := range mappings {
		if stdErrors.Is(err, m.target) {
			return WrapError(err, m.code, m.message)
		}
	}

	return err
}
