// Package xmetrics 提供缓存运行时的可观测性：
// 维护任务的链路与操作指标，以及缓存计数器的 OTel 导出。
//
// # Observer
//
// Observer/Span 是最小化接口，业务代码只依赖接口：
//
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xcache",
//		Operation: "xcache.sweep",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// NewOTelObserver 基于 OpenTelemetry 实现，每个跨度同时记录：
//   - xcachekit.operation.total
//   - xcachekit.operation.duration
//
// 属性为 component / operation / status。
//
// # 缓存指标
//
// RegisterCacheMetrics 注册异步观测指标，采集时从 CacheSource 读取快照：
//   - xcachekit.cache.hits
//   - xcachekit.cache.misses
//   - xcachekit.cache.evictions
//   - xcachekit.cache.size
//
// 属性为 cache=<缓存名>。
package xmetrics
