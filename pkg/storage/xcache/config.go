package xcache

import (
	"fmt"
	"slices"
	"time"

	"github.com/omeyang/xcachekit/pkg/config/xconf"
)

// Config 注册表的文件配置。
//
//	maintenance:
//	  sweep_interval: 60s
//	  report_interval: 5m
//	caches:
//	  ai_responses:
//	    max_size: 500
//	    default_ttl: 10m
//	    eviction_policy: lru
//	  cooldowns:
//	    default_ttl: 30s
//	    eviction_policy: fifo
type Config struct {
	Maintenance MaintenanceConfig      `koanf:"maintenance"`
	Caches      map[string]CacheConfig `koanf:"caches"`
}

// MaintenanceConfig 维护任务周期，0 表示使用默认值。
type MaintenanceConfig struct {
	SweepInterval  time.Duration `koanf:"sweep_interval"`
	ReportInterval time.Duration `koanf:"report_interval"`
}

// CacheConfig 单个缓存的文件配置。省略的字段使用 DefaultOptions 中的值。
//
// MaxSize 与 UpdateAgeOnGet 使用指针区分"未配置"和显式的 0 / false；
// 显式配置 max_size: 0 是错误，而不是回落到默认值。
type CacheConfig struct {
	MaxSize        *int          `koanf:"max_size"`
	DefaultTTL     time.Duration `koanf:"default_ttl"`
	UpdateAgeOnGet *bool         `koanf:"update_age_on_get"`
	EvictionPolicy string        `koanf:"eviction_policy"`
}

// LoadConfig 从 cfg 的 path 路径读取注册表配置并校验。
// path 为空时读取整个配置。
func LoadConfig(cfg xconf.Config, path string) (*Config, error) {
	var c Config
	if err := cfg.Unmarshal(path, &c); err != nil {
		return nil, fmt.Errorf("xcache: load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate 校验配置，错误均包装 ErrInvalidConfig，并带上出错的缓存名。
func (c *Config) Validate() error {
	if c.Maintenance.SweepInterval < 0 {
		return fmt.Errorf("maintenance.sweep_interval: %w", configError(ErrInvalidInterval))
	}
	if c.Maintenance.ReportInterval < 0 {
		return fmt.Errorf("maintenance.report_interval: %w", configError(ErrInvalidInterval))
	}
	for _, name := range c.CacheNames() {
		if name == "" {
			return configError(ErrEmptyName)
		}
		if _, err := c.Caches[name].Options(); err != nil {
			return fmt.Errorf("caches.%s: %w", name, err)
		}
	}
	return nil
}

// CacheNames 按字典序返回配置的缓存名称。
func (c *Config) CacheNames() []string {
	names := make([]string, 0, len(c.Caches))
	for name := range c.Caches {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegistryOptions 将维护配置转换为注册表选项，0 值不产生选项。
func (c *Config) RegistryOptions() []RegistryOption {
	var opts []RegistryOption
	if c.Maintenance.SweepInterval > 0 {
		opts = append(opts, WithSweepInterval(c.Maintenance.SweepInterval))
	}
	if c.Maintenance.ReportInterval > 0 {
		opts = append(opts, WithReportInterval(c.Maintenance.ReportInterval))
	}
	return opts
}

// Options 将文件配置转换为已校验的缓存选项。
//
// default_ttl 为 0 表示使用默认值，负值是错误；
// eviction_policy 为空表示使用默认值。
func (cc CacheConfig) Options() (Options, error) {
	opts, err := cc.options()
	if err != nil {
		return Options{}, err
	}
	return buildOptions(opts)
}

func (cc CacheConfig) options() ([]Option, error) {
	var opts []Option
	if cc.MaxSize != nil {
		opts = append(opts, WithMaxSize(*cc.MaxSize))
	}
	if cc.DefaultTTL < 0 {
		return nil, configError(ErrInvalidTTL)
	}
	if cc.DefaultTTL > 0 {
		opts = append(opts, WithDefaultTTL(cc.DefaultTTL))
	}
	if cc.UpdateAgeOnGet != nil {
		opts = append(opts, WithUpdateAgeOnGet(*cc.UpdateAgeOnGet))
	}
	if cc.EvictionPolicy != "" {
		p, err := ParsePolicy(cc.EvictionPolicy)
		if err != nil {
			return nil, configError(err)
		}
		opts = append(opts, WithEvictionPolicy(p))
	}
	return opts, nil
}

// Apply 按名称顺序创建配置中的所有缓存。
//
// 已存在的缓存保持原样（先写者胜）。遇到第一个错误即返回，
// 此前已创建的缓存保留在注册表中。
func (r *Registry) Apply(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	for _, name := range cfg.CacheNames() {
		opts, err := cfg.Caches[name].options()
		if err != nil {
			return fmt.Errorf("caches.%s: %w", name, err)
		}
		if _, err := r.GetOrCreate(name, opts...); err != nil {
			return fmt.Errorf("caches.%s: %w", name, err)
		}
	}
	return nil
}
