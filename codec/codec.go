// Package codec 提供列表文档的 XML / JSON / YAML 编解码
package codec

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"ac4y/domain/list"
)

// 支持的格式
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ICodec 列表文档编解码器
//
// 实现：
//   - XMLCodec（默认，根元素为文档类型名）
//   - JSONCodec
//   - YAMLCodec
type ICodec interface {
	// Format 格式标识
	Format() string

	// ContentType MIME 类型
	ContentType() string

	// Encode 编码文档
	Encode(doc list.IDocument) ([]byte, error)

	// Decode 解码到给定文档，文档原有序列会被替换
	Decode(data []byte, doc list.IDocument) error
}

// ForFormat 按名称获取编解码器（不区分大小写，yml 等同 yaml）
// 返回的编解码器使用默认选项（带缩进）
func ForFormat(name string) (ICodec, error) {
	return New(name, true)
}

// New 按名称与缩进选项创建编解码器，YAML 始终缩进
func New(name string, indent bool) (ICodec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatXML:
		return NewXMLCodec(indent), nil
	case FormatJSON:
		return NewJSONCodec(indent), nil
	case FormatYAML, "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Formats 返回支持的格式（已排序）
func Formats() []string {
	formats := []string{FormatXML, FormatJSON, FormatYAML}
	sort.Strings(formats)
	return formats
}

// Detect 根据首个非空白字符推断格式
//   - '<' -> xml
//   - '{' -> json
//   - 其他 -> yaml
func Detect(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return FormatYAML
	}
	switch trimmed[0] {
	case '<':
		return FormatXML
	case '{':
		return FormatJSON
	default:
		return FormatYAML
	}
}

func checkEncode(doc list.IDocument) error {
	if doc == nil {
		return ErrInvalidDocument
	}
	return nil
}

func checkDecode(data []byte, doc list.IDocument) error {
	if doc == nil {
		return ErrInvalidDocument
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}
	return nil
}
