package codec

import (
	"encoding/xml"
	"errors"

	"ac4y/domain/list"
)

// XMLCodec XML 编解码器
type XMLCodec struct {
	indent bool
}

// NewXMLCodec 创建 XML 编解码器
func NewXMLCodec(indent bool) *XMLCodec {
	return &XMLCodec{indent: indent}
}

func (c *XMLCodec) Format() string      { return FormatXML }
func (c *XMLCodec) ContentType() string { return "application/xml" }

// Encode 编码文档，输出带 XML 声明头
func (c *XMLCodec) Encode(doc list.IDocument) ([]byte, error) {
	if err := checkEncode(doc); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if c.indent {
		data, err = xml.MarshalIndent(doc, "", "  ")
	} else {
		data, err = xml.Marshal(doc)
	}
	if err != nil {
		return nil, errors.Join(ErrSerializationFailed, err)
	}

	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')
	return out, nil
}

// Decode 解码文档，根元素必须与文档类型一致
func (c *XMLCodec) Decode(data []byte, doc list.IDocument) error {
	if err := checkDecode(data, doc); err != nil {
		return err
	}
	if err := xml.Unmarshal(data, doc); err != nil {
		return errors.Join(ErrDeserializationFailed, err)
	}
	return nil
}

var _ ICodec = (*XMLCodec)(nil)
