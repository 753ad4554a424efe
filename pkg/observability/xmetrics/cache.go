package xmetrics

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricCacheHits      = "xcachekit.cache.hits"
	metricCacheMisses    = "xcachekit.cache.misses"
	metricCacheEvictions = "xcachekit.cache.evictions"
	metricCacheSize      = "xcachekit.cache.size"

	attrCache = "cache"
)

// CacheSnapshot 单个缓存在采集时刻的计数。
type CacheSnapshot struct {
	Name      string
	Size      int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// CacheSource 提供缓存快照，每次采集调用一次。实现须并发安全。
type CacheSource interface {
	Snapshots() []CacheSnapshot
}

// CacheSourceFunc 函数适配器。
type CacheSourceFunc func() []CacheSnapshot

// Snapshots 实现 CacheSource。
func (f CacheSourceFunc) Snapshots() []CacheSnapshot { return f() }

// Registration 注销异步采集回调。
type Registration interface {
	Unregister() error
}

// RegisterCacheMetrics 注册缓存异步指标。
//
// 计数器为单调累计值，直接取自快照；size 为 gauge。
// 采集周期由 MeterProvider 的 Reader 决定，不在此处启动任何 goroutine。
func RegisterCacheMetrics(src CacheSource, opts ...Option) (Registration, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	meter := newOTelConfig(opts).meterProvider.Meter(defaultInstrumentationName)

	hits, err := meter.Int64ObservableCounter(metricCacheHits,
		metric.WithDescription("cache hits"), metric.WithUnit("1"))
	if err != nil {
		return nil, instrumentError(metricCacheHits, err)
	}
	misses, err := meter.Int64ObservableCounter(metricCacheMisses,
		metric.WithDescription("cache misses, including expired reads"), metric.WithUnit("1"))
	if err != nil {
		return nil, instrumentError(metricCacheMisses, err)
	}
	evictions, err := meter.Int64ObservableCounter(metricCacheEvictions,
		metric.WithDescription("entries removed by capacity eviction or expiry"), metric.WithUnit("1"))
	if err != nil {
		return nil, instrumentError(metricCacheEvictions, err)
	}
	size, err := meter.Int64ObservableGauge(metricCacheSize,
		metric.WithDescription("current entry count"), metric.WithUnit("1"))
	if err != nil {
		return nil, instrumentError(metricCacheSize, err)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, s := range src.Snapshots() {
			set := metric.WithAttributes(attribute.String(attrCache, s.Name))
			o.ObserveInt64(hits, clampInt64(s.Hits), set)
			o.ObserveInt64(misses, clampInt64(s.Misses), set)
			o.ObserveInt64(evictions, clampInt64(s.Evictions), set)
			o.ObserveInt64(size, s.Size, set)
		}
		return nil
	}, hits, misses, evictions, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegisterCallback, err)
	}
	return reg, nil
}

func instrumentError(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCreateInstrument, name, err)
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
