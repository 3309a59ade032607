package codec

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"

	"ac4y/domain/list"
)

// YAMLCodec YAML 编解码器
type YAMLCodec struct{}

// NewYAMLCodec 创建 YAML 编解码器
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Format() string      { return FormatYAML }
func (c *YAMLCodec) ContentType() string { return "application/yaml" }

// Encode 编码文档（两空格缩进）
func (c *YAMLCodec) Encode(doc list.IDocument) ([]byte, error) {
	if err := checkEncode(doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, errors.Join(ErrSerializationFailed, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Join(ErrSerializationFailed, err)
	}
	return buf.Bytes(), nil
}

// Decode 解码文档
// null 文档与 JSON 的 null 一致，解码为空序列；仅含注释的文档视为空数据
func (c *YAMLCodec) Decode(data []byte, doc list.IDocument) error {
	if err := checkDecode(data, doc); err != nil {
		return err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.Join(ErrDeserializationFailed, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return ErrEmptyData
	}

	content := root.Content[0]
	if content.ShortTag() == "!!null" {
		// yaml.v3 不会对 null 节点调用 UnmarshalYAML
		content = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	if err := content.Decode(doc); err != nil {
		return errors.Join(ErrDeserializationFailed, err)
	}
	return nil
}

var _ ICodec = (*YAMLCodec)(nil)
