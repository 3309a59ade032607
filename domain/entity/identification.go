package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Identification 标识实体
// GUID 为全局唯一标识，HumanID / PublicHumanID 为可读编号
type Identification struct {
	NoID `json:"-" yaml:"-" xml:"-"`

	GUID          string `json:"guid" yaml:"guid" xml:"guid"`
	HumanID       string `json:"humanId,omitempty" yaml:"humanId,omitempty" xml:"humanId,omitempty"`
	PublicHumanID string `json:"publicHumanId,omitempty" yaml:"publicHumanId,omitempty" xml:"publicHumanId,omitempty"`
}

// NewIdentification 创建标识实体，GUID 随机生成
func NewIdentification(humanID string) *Identification {
	return &Identification{
		GUID:    uuid.NewString(),
		HumanID: humanID,
	}
}

// GetGUID 返回全局唯一标识
func (i *Identification) GetGUID() string {
	return i.GUID
}

// Validate 校验 GUID 格式
func (i *Identification) Validate() error {
	if i.GUID == "" {
		return fmt.Errorf("identification: guid is empty")
	}
	if _, err := uuid.Parse(i.GUID); err != nil {
		return fmt.Errorf("identification: invalid guid %q: %w", i.GUID, err)
	}
	return nil
}
