package codec

import (
	"encoding/json"
	"errors"

	"ac4y/domain/list"
)

// JSONCodec JSON 编解码器
type JSONCodec struct {
	indent bool
}

// NewJSONCodec 创建 JSON 编解码器
func NewJSONCodec(indent bool) *JSONCodec {
	return &JSONCodec{indent: indent}
}

func (c *JSONCodec) Format() string      { return FormatJSON }
func (c *JSONCodec) ContentType() string { return "application/json" }

// Encode 编码文档
func (c *JSONCodec) Encode(doc list.IDocument) ([]byte, error) {
	if err := checkEncode(doc); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if c.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, errors.Join(ErrSerializationFailed, err)
	}
	return data, nil
}

// Decode 解码文档
func (c *JSONCodec) Decode(data []byte, doc list.IDocument) error {
	if err := checkDecode(data, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return errors.Join(ErrDeserializationFailed, err)
	}
	return nil
}

var _ ICodec = (*JSONCodec)(nil)
