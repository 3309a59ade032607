package entity

// Object 通用领域对象
// 内嵌 Identification，序列化时标识字段与对象字段平铺在同一层
type Object struct {
	Identification `yaml:",inline"`

	Name        string `json:"name,omitempty" yaml:"name,omitempty" xml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" xml:"description,omitempty"`
}

// NewObject 创建领域对象，GUID 随机生成
func NewObject(humanID, name string) *Object {
	return &Object{
		Identification: *NewIdentification(humanID),
		Name:           name,
	}
}

// GetName 返回对象名称
func (o *Object) GetName() string {
	return o.Name
}
