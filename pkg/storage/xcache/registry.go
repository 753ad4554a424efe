package xcache

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/omeyang/xcachekit/pkg/observability/xlog"
)

// Registry 管理具名缓存。
//
// Registry 由宿主程序显式创建并持有（通常在进程启动时创建一次），
// 通过依赖注入传给调用方，包内不提供全局单例。
// 所有方法并发安全。
type Registry struct {
	id     string
	opts   *registryOptions
	logger xlog.Logger

	mu     sync.RWMutex
	caches map[string]*Cache

	maintMu sync.Mutex
	cron    *cron.Cron // 非 nil 表示维护任务正在运行
}

// NewRegistry 创建注册表。
//
// 维护任务不会自动启动，需调用 Start 或 Run。
func NewRegistry(opts ...RegistryOption) *Registry {
	options := defaultRegistryOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	logger := options.logger
	if logger == nil {
		logger = xlog.Default()
	}

	id := uuid.NewString()
	return &Registry{
		id:     id,
		opts:   options,
		logger: logger.With(xlog.Component("xcache"), slog.String(xlog.KeyRegistry, id)),
		caches: make(map[string]*Cache),
	}
}

// ID 返回注册表实例 ID，出现在统计上报日志中。
func (r *Registry) ID() string {
	return r.id
}

// GetOrCreate 返回名为 name 的缓存，不存在时按 opts 创建。
//
// 先写者胜：name 已存在时直接返回已有缓存，opts 被忽略（不合并、不校验）。
// 这样共享缓存不会因为第二个调用方传入不同选项而被意外重配置。
//
// name 为空或选项无效时返回包装了 ErrInvalidConfig 的错误，注册表不受影响。
func (r *Registry) GetOrCreate(name string, opts ...Option) (*Cache, error) {
	if name == "" {
		return nil, configError(ErrEmptyName)
	}

	if c, ok := r.lookup(name); ok {
		r.logIgnoredOptions(c, opts)
		return c, nil
	}

	options, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if c, ok := r.caches[name]; ok {
		// 并发创建时另一个调用方先完成
		r.mu.Unlock()
		r.logIgnoredOptions(c, opts)
		return c, nil
	}
	c, err := newCache(name, options, r.opts.clock)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.caches[name] = c
	r.mu.Unlock()

	r.logger.Info(context.Background(), "cache created",
		xlog.Cache(name),
		slog.Int("max_size", options.MaxSize),
		slog.Duration("default_ttl", options.DefaultTTL),
		slog.Bool("update_age_on_get", options.UpdateAgeOnGet),
		slog.String("eviction_policy", options.EvictionPolicy.String()),
	)
	return c, nil
}

// logIgnoredOptions 在重复创建且选项不同时记录 debug 日志。
func (r *Registry) logIgnoredOptions(c *Cache, opts []Option) {
	if len(opts) == 0 {
		return
	}
	requested := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&requested)
		}
	}
	if requested == c.opts {
		return
	}
	r.logger.Debug(context.Background(), "cache already exists, options ignored",
		xlog.Cache(c.name),
		slog.Int("requested_max_size", requested.MaxSize),
		slog.Int("effective_max_size", c.opts.MaxSize),
	)
}

// Lookup 返回已创建的缓存，不存在时返回 *UnknownCacheError。
func (r *Registry) Lookup(name string) (*Cache, error) {
	c, ok := r.lookup(name)
	if !ok {
		return nil, &UnknownCacheError{Name: name}
	}
	return c, nil
}

func (r *Registry) lookup(name string) (*Cache, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caches[name]
	return c, ok
}

// Names 按字典序返回所有缓存名称。
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.caches))
	for name := range r.caches {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// snapshot 按名称顺序返回所有缓存，调用方在锁外操作。
func (r *Registry) snapshot() []*Cache {
	names := r.Names()
	out := make([]*Cache, 0, len(names))
	r.mu.RLock()
	for _, name := range names {
		if c, ok := r.caches[name]; ok {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()
	return out
}

// =============================================================================
// 路由方法
// =============================================================================

// Get 从名为 name 的缓存读取 key。
// 缓存不存在时返回 *UnknownCacheError，而不是静默未命中。
func (r *Registry) Get(name, key string) (any, bool, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, false, err
	}
	v, ok := c.Get(key)
	return v, ok, nil
}

// Set 使用默认 TTL 写入。缓存不存在时返回 *UnknownCacheError。
func (r *Registry) Set(name, key string, value any) error {
	return r.SetWithTTL(name, key, value, 0)
}

// SetWithTTL 写入并指定 TTL，ttl <= 0 时使用缓存默认 TTL。
// 缓存不存在时返回 *UnknownCacheError。
func (r *Registry) SetWithTTL(name, key string, value any, ttl time.Duration) error {
	c, err := r.Lookup(name)
	if err != nil {
		return err
	}
	c.SetWithTTL(key, value, ttl)
	return nil
}

// Delete 删除 key，返回 key 是否存在。缓存不存在时返回 *UnknownCacheError。
func (r *Registry) Delete(name, key string) (bool, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return false, err
	}
	return c.Delete(key), nil
}

// Clear 清空名为 name 的缓存（保留缓存对象与统计）。
// 缓存不存在时返回 *UnknownCacheError。
func (r *Registry) Clear(name string) error {
	c, err := r.Lookup(name)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

// ClearAll 清空所有缓存。
func (r *Registry) ClearAll() {
	for _, c := range r.snapshot() {
		c.Clear()
	}
}

// Stats 返回名为 name 的缓存统计。缓存不存在时返回 *UnknownCacheError。
func (r *Registry) Stats(name string) (Stats, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return Stats{}, err
	}
	return c.Stats(), nil
}

// AllStats 按名称顺序返回所有缓存的统计。
func (r *Registry) AllStats() []Stats {
	caches := r.snapshot()
	out := make([]Stats, 0, len(caches))
	for _, c := range caches {
		out = append(out, c.Stats())
	}
	return out
}

// GlobalStats 返回所有缓存的汇总统计，查询时计算。
func (r *Registry) GlobalStats() GlobalStats {
	return aggregate(r.AllStats())
}
