// Package entity 定义列表文档中使用的领域实体
//
// 约定：
// 1. 所有实体嵌入 NoID 标记，表示其自身不携带持久化主键
// 2. 实体仅承载数据，不包含与序列化格式无关的行为
// 3. 同一结构体同时声明 xml / json / yaml 标签，三种格式字段名保持一致
package entity

// INoID 无主键对象的标记接口
// 仅用于类型层级约定，不要求任何字段或行为
type INoID interface {
	noID()
}

// NoID 无主键对象标记（用于嵌入）
// 不向任何序列化格式输出字段
type NoID struct{}

func (NoID) noID() {}
