package list

import (
	"encoding/json"
	"encoding/xml"

	"gopkg.in/yaml.v3"

	"ac4y/domain/collection"
	"ac4y/domain/entity"
)

const (
	ObjectListRoot = "ac4yObjectList"
	ObjectItem     = "ac4yObject"
)

// ObjectList 领域对象列表文档
type ObjectList struct {
	entity.NoID

	ac4yObject *collection.List[*entity.Object]
}

// objectListBody 线上格式
type objectListBody struct {
	XMLName    xml.Name         `json:"-" yaml:"-"`
	Ac4yObject []*entity.Object `json:"ac4yObject" yaml:"ac4yObject" xml:"ac4yObject"`
}

// NewObjectList 创建空列表文档
func NewObjectList() *ObjectList {
	l := &ObjectList{}
	l.SetAc4yObject(collection.NewList[*entity.Object]())
	return l
}

// GetAc4yObject 返回序列引用（可能为 nil）
func (l *ObjectList) GetAc4yObject() *collection.List[*entity.Object] {
	return l.ac4yObject
}

// SetAc4yObject 替换序列引用，允许 nil
func (l *ObjectList) SetAc4yObject(items *collection.List[*entity.Object]) {
	l.ac4yObject = items
}

func (l *ObjectList) RootName() string { return ObjectListRoot }
func (l *ObjectList) ItemName() string { return ObjectItem }
func (l *ObjectList) Len() int         { return l.ac4yObject.Len() }

func (l *ObjectList) body() objectListBody {
	items := l.ac4yObject.Items()
	if items == nil {
		items = []*entity.Object{}
	}
	return objectListBody{
		XMLName:    xml.Name{Local: ObjectListRoot},
		Ac4yObject: items,
	}
}

func (l *ObjectList) setBody(b objectListBody) {
	l.ac4yObject = collection.NewList(b.Ac4yObject...)
}

// MarshalXML 实现 xml.Marshaler
func (l *ObjectList) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.Encode(l.body())
}

// UnmarshalXML 实现 xml.Unmarshaler
func (l *ObjectList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if err := checkRoot(start.Name.Local, ObjectListRoot); err != nil {
		return err
	}
	var b objectListBody
	if err := d.DecodeElement(&b, &start); err != nil {
		return err
	}
	l.setBody(b)
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (l *ObjectList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.body())
}

// UnmarshalJSON 实现 json.Unmarshaler
func (l *ObjectList) UnmarshalJSON(data []byte) error {
	fields, err := jsonFields(data)
	if err != nil {
		return err
	}
	if err := checkFields(fields, ObjectItem); err != nil {
		return err
	}

	var b objectListBody
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	l.setBody(b)
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (l *ObjectList) MarshalYAML() (interface{}, error) {
	return l.body(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (l *ObjectList) UnmarshalYAML(value *yaml.Node) error {
	if err := checkFields(yamlFields(value), ObjectItem); err != nil {
		return err
	}

	var b objectListBody
	if err := value.Decode(&b); err != nil {
		return err
	}
	l.setBody(b)
	return nil
}

var _ IDocument = (*ObjectList)(nil)
