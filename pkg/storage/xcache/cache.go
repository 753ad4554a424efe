package xcache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omeyang/xcachekit/pkg/util/xlru"
)

// entry 缓存条目及其元数据。
type entry struct {
	value          any
	createdAt      time.Time // 写入时设置，之后不变
	lastAccessedAt time.Time // 仅在 UpdateAgeOnGet 时由读命中刷新
	expiresAt      time.Time
}

// expired 判断条目在 now 时刻是否已过期（now >= expiresAt）。
func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Cache 是一个具名的进程内缓存。
// 必须通过 [Registry.GetOrCreate] 创建，所有方法并发安全。
//
// 返回的值由缓存持有，调用方应将其视为只读；
// 如需修改，请自行拷贝或在外部加锁。
type Cache struct {
	name  string
	opts  Options
	clock clockwork.Clock

	mu        sync.Mutex
	index     *xlru.Index[string, *entry] // 最旧在前，队首即下一个淘汰对象
	hits      uint64
	misses    uint64
	evictions uint64
}

// newCache 创建缓存，opts 必须已校验。
func newCache(name string, opts Options, clock clockwork.Clock) (*Cache, error) {
	index, err := xlru.New[string, *entry](opts.MaxSize)
	if err != nil {
		return nil, configError(err)
	}
	return &Cache{
		name:  name,
		opts:  opts,
		clock: clock,
		index: index,
	}, nil
}

// Name 返回缓存名称。
func (c *Cache) Name() string {
	return c.name
}

// Options 返回创建时生效的选项。
func (c *Cache) Options() Options {
	return c.opts
}

// Get 读取 key。
//
//   - key 不存在：未命中
//   - key 已过期：未命中，条目被立即移除并计入淘汰，旧值不会返回
//   - 否则命中；开启 UpdateAgeOnGet 时刷新访问时间（LRU 下同时移到最新位置）
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	e, ok := c.index.Peek(key)
	if !ok {
		c.misses++
		return nil, false
	}
	if e.expired(now) {
		c.index.Remove(key)
		c.evictions++
		c.misses++
		return nil, false
	}

	c.hits++
	if c.opts.UpdateAgeOnGet {
		e.lastAccessedAt = now
		if c.opts.EvictionPolicy == PolicyLRU {
			c.index.Touch(key)
		}
	}
	return e.value, true
}

// GetAs 以类型 T 读取 key。
// 值存在但类型不符时返回零值和 false；该次读取仍按命中计数。
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set 使用默认 TTL 写入 key。
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, 0)
}

// SetWithTTL 写入 key，ttl <= 0 时使用默认 TTL。
//
// key 不存在且缓存已满时，先按淘汰策略移除一个条目再插入；
// 覆盖已有 key 不触发淘汰，并刷新全部时间戳。
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.opts.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !c.index.Contains(key) && c.index.Len() >= c.opts.MaxSize {
		c.evictOneLocked()
	}
	c.index.Put(key, &entry{
		value:          value,
		createdAt:      now,
		lastAccessedAt: now,
		expiresAt:      now.Add(ttl),
	})
}

// evictOneLocked 按策略淘汰一个条目。
// LRU 与 FIFO 的区别体现在读命中是否 Touch，因此淘汰动作本身都是移除队首。
func (c *Cache) evictOneLocked() {
	if _, _, ok := c.index.RemoveOldest(); ok {
		c.evictions++
	}
}

// Has 检查 key 是否存在且未过期。
// 不计入命中/未命中，不刷新访问时间，也不移除过期条目。
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index.Peek(key)
	return ok && !e.expired(c.clock.Now())
}

// Delete 删除 key，返回 key 是否存在。主动删除不计入淘汰。
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Remove(key)
}

// Keys 按淘汰顺序（下一个淘汰对象在前）返回未过期的 key。
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	keys := make([]string, 0, c.index.Len())
	c.index.Range(func(key string, e *entry) bool {
		if !e.expired(now) {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

// Len 返回当前条目数。
//
// 注意：可能包含已过期但尚未被 Get 或 Sweep 回收的条目。
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Len()
}

// Clear 清空所有条目，不重置统计。
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index.Purge()
}

// Sweep 移除所有 expiresAt <= now 的条目，返回移除数量。
// 移除数量计入 Evictions。
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	c.index.Range(func(key string, e *entry) bool {
		if e.expired(now) {
			c.index.Remove(key)
			removed++
		}
		return true
	})
	c.evictions += uint64(removed)
	return removed
}

// Stats 返回统计快照。
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Name:      c.name,
		Size:      c.index.Len(),
		MaxSize:   c.opts.MaxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate(c.hits, c.misses),
	}
}
