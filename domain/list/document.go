// Package list 定义以单一列表为内容的根文档容器
//
// 每个容器只持有一个可变序列，存在的意义是让“某类实体的列表”
// 可以作为独立的根文档进行 XML / JSON / YAML 编解码。
//
// 约定：
//   - 构造时序列为空且非 nil
//   - Get* 返回序列引用本身（不复制），调用方可以直接修改
//   - Set* 原样替换引用，允许 nil，不做任何校验
//   - 编码时 nil 序列等同空数组；解码结果的序列始终非 nil
package list

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ac4y/domain/entity"
	appErrors "ac4y/errors"
)

var (
	// ErrUnknownKind 未知的文档类型
	ErrUnknownKind = errors.New("unknown document kind")

	// ErrRootMismatch 根元素名称与目标容器不一致
	ErrRootMismatch = errors.New("root element mismatch")
)

func init() {
	appErrors.RegisterCode(ErrUnknownKind, appErrors.ErrCodeInvalidInput, "无效的文档类型")
	appErrors.RegisterCode(ErrRootMismatch, appErrors.ErrCodeInvalidInput, "无效的文档类型")
}

// IDocument 列表根文档
type IDocument interface {
	entity.INoID

	// RootName 根元素名称，同时作为文档类型标识
	RootName() string

	// ItemName 列表字段（元素）名称
	ItemName() string

	// Len 元素个数，序列为 nil 时返回 0
	Len() int
}

type factory func() IDocument

var kinds = map[string]factory{
	IdentificationListRoot: func() IDocument { return NewIdentificationList() },
	ObjectListRoot:         func() IDocument { return NewObjectList() },
}

var aliases = map[string]string{
	"identification":     IdentificationListRoot,
	"identificationlist": IdentificationListRoot,
	"object":             ObjectListRoot,
	"objectlist":         ObjectListRoot,
}

// New 按文档类型创建空容器
// 接受根元素名称（ac4yIdentificationList / ac4yObjectList）或简写（identification / object），不区分大小写
func New(kind string) (IDocument, error) {
	if f, ok := kinds[kind]; ok {
		return f(), nil
	}

	lower := strings.ToLower(strings.TrimSpace(kind))
	for root, f := range kinds {
		if strings.ToLower(root) == lower {
			return f(), nil
		}
	}
	if root, ok := aliases[lower]; ok {
		return kinds[root](), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Kinds 返回所有文档类型（根元素名称，已排序）
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkRoot(got, want string) error {
	if got != want {
		return fmt.Errorf("%w: expected <%s>, got <%s>", ErrRootMismatch, want, got)
	}
	return nil
}

// checkFields 校验文档只包含列表字段
// 出现其他字段说明数据属于另一种文档类型，与 XML 根元素不一致同样处理
func checkFields(fields []string, want string) error {
	var unexpected []string
	for _, f := range fields {
		if f != want {
			unexpected = append(unexpected, f)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return fmt.Errorf("%w: expected field %q, got %q", ErrRootMismatch, want, unexpected[0])
}

// jsonFields 返回 JSON 对象的顶层字段名，null 视为无字段
func jsonFields(data []byte) ([]string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	return names, nil
}

// yamlFields 返回 YAML 映射节点的键，非映射节点返回 nil
func yamlFields(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	names := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		names = append(names, node.Content[i].Value)
	}
	return names
}
