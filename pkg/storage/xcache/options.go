package xcache

import (
	"fmt"
	"strings"
	"time"

	"github.com/omeyang/xcachekit/pkg/util/xlru"
)

// =============================================================================
// 淘汰策略
// =============================================================================

// Policy 淘汰策略。
type Policy uint8

const (
	// PolicyLRU 淘汰最久未访问的条目。
	PolicyLRU Policy = iota
	// PolicyFIFO 淘汰最早写入的条目。
	PolicyFIFO
)

// String 返回策略名称（lru / fifo）。
func (p Policy) String() string {
	switch p {
	case PolicyLRU:
		return "lru"
	case PolicyFIFO:
		return "fifo"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// IsValid 检查策略是否为已知值。
func (p Policy) IsValid() bool {
	return p == PolicyLRU || p == PolicyFIFO
}

// MarshalText 实现 encoding.TextMarshaler 接口。
func (p Policy) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, ErrInvalidPolicy
	}
	return []byte(p.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口，支持从配置文件直接解析。
func (p *Policy) UnmarshalText(data []byte) error {
	parsed, err := ParsePolicy(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePolicy 解析策略名称，大小写不敏感，自动 TrimSpace。
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lru":
		return PolicyLRU, nil
	case "fifo":
		return PolicyFIFO, nil
	default:
		return PolicyLRU, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// =============================================================================
// 缓存选项
// =============================================================================

// 默认值。
const (
	// DefaultMaxSize 默认容量。
	DefaultMaxSize = 1000

	// DefaultTTL 默认条目存活时间。
	DefaultTTL = time.Hour
)

// Options 定义单个缓存的配置，创建后不可修改。
type Options struct {
	// MaxSize 最大条目数，必须 > 0。默认 1000。
	MaxSize int

	// DefaultTTL 未单独指定 TTL 时的过期时间，必须 > 0。默认 1 小时。
	DefaultTTL time.Duration

	// UpdateAgeOnGet 读命中是否刷新访问时间。默认 true。
	// 仅影响 LRU 的淘汰顺序；FIFO 从不因读取改变顺序。
	UpdateAgeOnGet bool

	// EvictionPolicy 淘汰策略。默认 PolicyLRU。
	EvictionPolicy Policy
}

// DefaultOptions 返回默认缓存选项。
func DefaultOptions() Options {
	return Options{
		MaxSize:        DefaultMaxSize,
		DefaultTTL:     DefaultTTL,
		UpdateAgeOnGet: true,
		EvictionPolicy: PolicyLRU,
	}
}

// Option 定义缓存选项函数类型。
type Option func(*Options)

// WithMaxSize 设置最大条目数。
// 与其他 With 函数不同，非法值不会被忽略，而是在 GetOrCreate 时返回配置错误。
func WithMaxSize(n int) Option {
	return func(o *Options) {
		o.MaxSize = n
	}
}

// WithDefaultTTL 设置默认 TTL。非正值会在 GetOrCreate 时返回配置错误。
func WithDefaultTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.DefaultTTL = ttl
	}
}

// WithUpdateAgeOnGet 设置读命中是否刷新访问时间。
func WithUpdateAgeOnGet(enable bool) Option {
	return func(o *Options) {
		o.UpdateAgeOnGet = enable
	}
}

// WithEvictionPolicy 设置淘汰策略。
func WithEvictionPolicy(p Policy) Option {
	return func(o *Options) {
		o.EvictionPolicy = p
	}
}

// buildOptions 在默认值之上应用选项并校验。
func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// validate 校验选项，错误均包装 ErrInvalidConfig。
func (o Options) validate() error {
	if o.MaxSize <= 0 || o.MaxSize > xlru.MaxSize {
		return configError(ErrInvalidMaxSize)
	}
	if o.DefaultTTL <= 0 {
		return configError(ErrInvalidTTL)
	}
	if !o.EvictionPolicy.IsValid() {
		return configError(ErrInvalidPolicy)
	}
	return nil
}
