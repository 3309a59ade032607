// Package collection 提供按引用持有的可变有序序列
package collection

// List 可变有序序列
//
// 以指针形式持有，持有同一 *List 的各方共享同一份元素：
// 通过任意引用的修改对其他引用可见。
// 允许重复元素与零值元素。
//
// 只读方法（Len / IsEmpty / Items / Each）对 nil 接收者安全；
// 修改方法对 nil 接收者会 panic。
//
// 非并发安全，由调用方负责同步。
type List[T any] struct {
	items []T
}

// NewList 创建序列，返回值永不为 nil
func NewList[T any](items ...T) *List[T] {
	l := &List[T]{items: make([]T, 0, len(items))}
	l.items = append(l.items, items...)
	return l
}

// Add 追加元素
func (l *List[T]) Add(items ...T) {
	l.items = append(l.items, items...)
}

// Len 返回元素个数
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// IsEmpty 是否为空
func (l *List[T]) IsEmpty() bool {
	return l.Len() == 0
}

// At 返回下标 i 处的元素，越界时 panic
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Set 替换下标 i 处的元素，越界时 panic
func (l *List[T]) Set(i int, item T) {
	l.items[i] = item
}

// RemoveAt 删除下标 i 处的元素，保持其余元素顺序
func (l *List[T]) RemoveAt(i int) {
	var zero T
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
}

// Clear 清空元素，序列本身仍可继续使用
func (l *List[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// Items 返回底层切片（不复制）
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	return l.items
}

// Each 按顺序遍历，fn 返回 false 时停止
func (l *List[T]) Each(fn func(i int, item T) bool) {
	if l == nil {
		return
	}
	for i, item := range l.items {
		if !fn(i, item) {
			return
		}
	}
}
