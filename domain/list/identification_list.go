package list

import (
	"encoding/json"
	"encoding/xml"

	"gopkg.in/yaml.v3"

	"ac4y/domain/collection"
	"ac4y/domain/entity"
)

const (
	IdentificationListRoot = "ac4yIdentificationList"
	IdentificationItem     = "ac4yIdentification"
)

// IdentificationList 标识实体列表文档
type IdentificationList struct {
	entity.NoID

	ac4yIdentification *collection.List[*entity.Identification]
}

// identificationListBody 线上格式
type identificationListBody struct {
	XMLName            xml.Name                 `json:"-" yaml:"-"`
	Ac4yIdentification []*entity.Identification `json:"ac4yIdentification" yaml:"ac4yIdentification" xml:"ac4yIdentification"`
}

// NewIdentificationList 创建空列表文档
func NewIdentificationList() *IdentificationList {
	l := &IdentificationList{}
	l.SetAc4yIdentification(collection.NewList[*entity.Identification]())
	return l
}

// GetAc4yIdentification 返回序列引用（可能为 nil）
func (l *IdentificationList) GetAc4yIdentification() *collection.List[*entity.Identification] {
	return l.ac4yIdentification
}

// SetAc4yIdentification 替换序列引用，允许 nil
func (l *IdentificationList) SetAc4yIdentification(items *collection.List[*entity.Identification]) {
	l.ac4yIdentification = items
}

func (l *IdentificationList) RootName() string { return IdentificationListRoot }
func (l *IdentificationList) ItemName() string { return IdentificationItem }
func (l *IdentificationList) Len() int         { return l.ac4yIdentification.Len() }

func (l *IdentificationList) body() identificationListBody {
	items := l.ac4yIdentification.Items()
	if items == nil {
		items = []*entity.Identification{}
	}
	return identificationListBody{
		XMLName:            xml.Name{Local: IdentificationListRoot},
		Ac4yIdentification: items,
	}
}

func (l *IdentificationList) setBody(b identificationListBody) {
	l.ac4yIdentification = collection.NewList(b.Ac4yIdentification...)
}

// MarshalXML 实现 xml.Marshaler
func (l *IdentificationList) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return e.Encode(l.body())
}

// UnmarshalXML 实现 xml.Unmarshaler
func (l *IdentificationList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if err := checkRoot(start.Name.Local, IdentificationListRoot); err != nil {
		return err
	}
	var b identificationListBody
	if err := d.DecodeElement(&b, &start); err != nil {
		return err
	}
	l.setBody(b)
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (l *IdentificationList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.body())
}

// UnmarshalJSON 实现 json.Unmarshaler
func (l *IdentificationList) UnmarshalJSON(data []byte) error {
	fields, err := jsonFields(data)
	if err != nil {
		return err
	}
	if err := checkFields(fields, IdentificationItem); err != nil {
		return err
	}

	var b identificationListBody
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	l.setBody(b)
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (l *IdentificationList) MarshalYAML() (interface{}, error) {
	return l.body(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (l *IdentificationList) UnmarshalYAML(value *yaml.Node) error {
	if err := checkFields(yamlFields(value), IdentificationItem); err != nil {
		return err
	}

	var b identificationListBody
	if err := value.Decode(&b); err != nil {
		return err
	}
	l.setBody(b)
	return nil
}

var _ IDocument = (*IdentificationList)(nil)
