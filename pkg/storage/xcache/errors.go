package xcache

import (
	"errors"
	"fmt"
)

// =============================================================================
// 配置错误
// =============================================================================

var (
	// ErrInvalidConfig 表示缓存配置无效。
	// GetOrCreate 返回的配置错误都包装了此错误，可用 errors.Is 判断，
	// 具体原因见下方细分错误。配置错误不会影响注册表中已有的缓存。
	ErrInvalidConfig = errors.New("xcache: invalid configuration")

	// ErrEmptyName 表示缓存名称为空。
	ErrEmptyName = errors.New("xcache: empty cache name")

	// ErrInvalidMaxSize 表示容量无效（必须大于 0 且不超过 16,777,216）。
	ErrInvalidMaxSize = errors.New("xcache: max size must be in (0, 16777216]")

	// ErrInvalidTTL 表示默认 TTL 无效（必须大于 0）。
	ErrInvalidTTL = errors.New("xcache: default TTL must be positive")

	// ErrInvalidPolicy 表示未知的淘汰策略。
	ErrInvalidPolicy = errors.New("xcache: unknown eviction policy")

	// ErrInvalidInterval 表示维护周期无效（不能为负）。
	ErrInvalidInterval = errors.New("xcache: maintenance interval must not be negative")
)

// =============================================================================
// 运行时错误
// =============================================================================

var (
	// ErrUnknownCache 表示目标缓存从未通过 GetOrCreate 创建。
	// 调用方可先创建缓存再重试。
	ErrUnknownCache = errors.New("xcache: unknown cache")

	// ErrAlreadyStarted 表示维护任务已在运行。
	ErrAlreadyStarted = errors.New("xcache: maintenance already started")

	// ErrNotStarted 表示维护任务尚未启动。
	ErrNotStarted = errors.New("xcache: maintenance not started")
)

// UnknownCacheError 包含未知缓存的名称。
//
// 使用 errors.Is(err, ErrUnknownCache) 判断类别，
// 使用 errors.As 获取名称：
//
//	var unknown *xcache.UnknownCacheError
//	if errors.As(err, &unknown) {
//	    log.Printf("cache %q not created", unknown.Name)
//	}
type UnknownCacheError struct {
	Name string
}

// Error 实现 error 接口。
func (e *UnknownCacheError) Error() string {
	return fmt.Sprintf("xcache: unknown cache %q", e.Name)
}

// Is 支持 errors.Is(err, ErrUnknownCache) 判断。
func (e *UnknownCacheError) Is(target error) bool {
	return target == ErrUnknownCache
}

// configError 将细分原因包装为 ErrInvalidConfig。
func configError(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, cause)
}
