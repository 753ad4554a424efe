package xlru

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// MaxSize 索引容量上限。
const MaxSize = 1 << 24 // 16,777,216

// Index 是按"最旧 → 最新"排列的有序键索引。
// 必须通过 [New] 创建，零值不可用。
// 非并发安全，调用方负责同步。
type Index[K comparable, V any] struct {
	lru  *simplelru.LRU[K, V]
	size int
}

// New 创建容量为 size 的索引。
// size <= 0 返回 ErrInvalidSize，size > MaxSize 返回 ErrSizeExceedsMax。
func New[K comparable, V any](size int) (*Index[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if size > MaxSize {
		return nil, ErrSizeExceedsMax
	}

	lru, err := simplelru.NewLRU[K, V](size, nil)
	if err != nil {
		return nil, fmt.Errorf("xlru: create index: %w", err)
	}
	return &Index[K, V]{lru: lru, size: size}, nil
}

// Put 插入或覆盖 key，并将其移动到最新位置。
// 返回 true 表示索引已满、底层库淘汰了最旧条目。
func (i *Index[K, V]) Put(key K, value V) (evicted bool) {
	return i.lru.Add(key, value)
}

// Touch 读取 key 并将其移动到最新位置。
func (i *Index[K, V]) Touch(key K) (V, bool) {
	return i.lru.Get(key)
}

// Peek 读取 key，不改变顺序。
func (i *Index[K, V]) Peek(key K) (V, bool) {
	return i.lru.Peek(key)
}

// Contains 检查 key 是否存在，不改变顺序。
func (i *Index[K, V]) Contains(key K) bool {
	return i.lru.Contains(key)
}

// Remove 删除 key，返回 key 是否存在。
func (i *Index[K, V]) Remove(key K) bool {
	return i.lru.Remove(key)
}

// Oldest 返回最旧的条目（下一个淘汰对象），不移除。
func (i *Index[K, V]) Oldest() (K, V, bool) {
	return i.lru.GetOldest()
}

// RemoveOldest 移除并返回最旧的条目。
func (i *Index[K, V]) RemoveOldest() (K, V, bool) {
	return i.lru.RemoveOldest()
}

// Keys 按最旧到最新的顺序返回所有键。
func (i *Index[K, V]) Keys() []K {
	return i.lru.Keys()
}

// Range 按最旧到最新的顺序遍历，fn 返回 false 时停止。
// 遍历期间可以安全地调用 Remove。
func (i *Index[K, V]) Range(fn func(key K, value V) bool) {
	for _, key := range i.lru.Keys() {
		value, ok := i.lru.Peek(key)
		if !ok {
			continue
		}
		if !fn(key, value) {
			return
		}
	}
}

// Len 返回当前条目数。
func (i *Index[K, V]) Len() int {
	return i.lru.Len()
}

// Cap 返回索引容量。
func (i *Index[K, V]) Cap() int {
	return i.size
}

// Purge 清空所有条目。
func (i *Index[K, V]) Purge() {
	i.lru.Purge()
}
