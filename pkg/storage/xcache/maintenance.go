package xcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/xcachekit/pkg/observability/xlog"
	"github.com/omeyang/xcachekit/pkg/observability/xmetrics"
)

// 维护任务的观测操作名。
const (
	OperationSweep  = "xcache.sweep"
	OperationReport = "xcache.report"
)

// SweepAll 在当前时刻对所有缓存执行一次过期清理，返回移除的条目总数。
func (r *Registry) SweepAll() int {
	now := r.opts.clock.Now()
	removed := 0
	for _, c := range r.snapshot() {
		removed += c.Sweep(now)
	}
	return removed
}

// Report 以 Info 级别输出每个缓存的统计和汇总统计。
func (r *Registry) Report(ctx context.Context) {
	all := r.AllStats()
	for _, s := range all {
		r.logger.Info(ctx, "cache stats",
			xlog.Cache(s.Name),
			slog.Int("size", s.Size),
			slog.Int("max_size", s.MaxSize),
			slog.Uint64("hits", s.Hits),
			slog.Uint64("misses", s.Misses),
			slog.Uint64("evictions", s.Evictions),
			slog.Float64("hit_rate", s.HitRate),
		)
	}

	g := aggregate(all)
	r.logger.Info(ctx, "cache global stats",
		xlog.Count(g.Caches),
		slog.Int("size", g.Size),
		slog.Uint64("hits", g.Hits),
		slog.Uint64("misses", g.Misses),
		slog.Uint64("evictions", g.Evictions),
		slog.Float64("hit_rate", g.HitRate),
	)
}

// Start 启动后台维护任务：按 sweep 周期清理过期条目，按 report 周期输出统计。
//
// ctx 仅用于携带日志与链路信息，其取消不会停止维护任务；停止请调用 Stop，
// 或使用 Run 将生命周期绑定到 ctx。
// 重复调用返回 ErrAlreadyStarted。
func (r *Registry) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r.maintMu.Lock()
	defer r.maintMu.Unlock()

	if r.cron != nil {
		return ErrAlreadyStarted
	}

	base := context.WithoutCancel(ctx)
	logger := cronLogger{ctx: base, logger: r.logger}
	// Recover 必须在 SkipIfStillRunning 内层：后者在 panic 时不会归还令牌
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger), cron.Recover(logger)),
	)

	if _, err := c.AddFunc(everySpec(r.opts.sweepInterval), func() { r.sweepCycle(base) }); err != nil {
		return fmt.Errorf("xcache: schedule sweep: %w", err)
	}
	if _, err := c.AddFunc(everySpec(r.opts.reportInterval), func() { r.reportCycle(base) }); err != nil {
		return fmt.Errorf("xcache: schedule report: %w", err)
	}

	c.Start()
	r.cron = c

	r.logger.Info(ctx, "cache maintenance started",
		slog.Duration("sweep_interval", cronInterval(r.opts.sweepInterval)),
		slog.Duration("report_interval", cronInterval(r.opts.reportInterval)),
	)
	return nil
}

// Stop 停止维护任务，并等待正在执行的周期结束。
// 未启动时返回 ErrNotStarted。Stop 之后可再次 Start。
func (r *Registry) Stop() error {
	r.maintMu.Lock()
	c := r.cron
	r.cron = nil
	r.maintMu.Unlock()

	if c == nil {
		return ErrNotStarted
	}

	<-c.Stop().Done()
	r.logger.Info(context.Background(), "cache maintenance stopped")
	return nil
}

// Run 启动维护任务并阻塞到 ctx 结束，然后停止维护任务。
// 满足 xrun.Service 接口，可直接交给 xrun.RunServices 管理。
// 运行期间被其他调用方 Stop 不视为错误。
func (r *Registry) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	if err := r.Stop(); err != nil && !errors.Is(err, ErrNotStarted) {
		return err
	}
	return nil
}

// Running 报告维护任务是否在运行。
func (r *Registry) Running() bool {
	r.maintMu.Lock()
	defer r.maintMu.Unlock()
	return r.cron != nil
}

func (r *Registry) sweepCycle(ctx context.Context) {
	ctx, span := xmetrics.Start(ctx, r.opts.observer, xmetrics.SpanOptions{
		Component: "xcache",
		Operation: OperationSweep,
	})
	start := time.Now()
	removed := r.SweepAll()
	span.End(xmetrics.Result{Attrs: []xmetrics.Attr{xmetrics.Int("removed", removed)}})

	if removed > 0 {
		r.logger.Debug(ctx, "expired entries swept",
			xlog.Count(removed),
			xlog.Duration(time.Since(start)),
		)
	}
}

func (r *Registry) reportCycle(ctx context.Context) {
	ctx, span := xmetrics.Start(ctx, r.opts.observer, xmetrics.SpanOptions{
		Component: "xcache",
		Operation: OperationReport,
	})
	r.Report(ctx)
	span.End(xmetrics.Result{Attrs: []xmetrics.Attr{xmetrics.Int("caches", len(r.Names()))}})
}

// everySpec 生成 cron 的固定间隔表达式。
func everySpec(d time.Duration) string {
	return "@every " + cronInterval(d).String()
}

// cronInterval 返回实际调度间隔。cron 只支持整秒，不足整秒的部分向上取整，最小 1s。
func cronInterval(d time.Duration) time.Duration {
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return max(d, time.Second)
}

// cronLogger 将 cron 内部日志（调度、panic 恢复、跳过）转到 xlog。
type cronLogger struct {
	ctx    context.Context
	logger xlog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(l.ctx, "cron: "+msg, kvAttrs(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	attrs := append(kvAttrs(keysAndValues), xlog.Err(err))
	l.logger.Error(l.ctx, "cron: "+msg, attrs...)
}

// kvAttrs 将 key-value 列表转换为 slog.Attr，非字符串 key 以 "!BADKEY" 记录。
func kvAttrs(kv []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		if i+1 >= len(kv) {
			attrs = append(attrs, slog.Any(key, nil))
			break
		}
		attrs = append(attrs, slog.Any(key, kv[i+1]))
	}
	return attrs
}

// Snapshots 返回所有缓存的指标快照，供 xmetrics.RegisterCacheMetrics 采集。
func (r *Registry) Snapshots() []xmetrics.CacheSnapshot {
	all := r.AllStats()
	out := make([]xmetrics.CacheSnapshot, 0, len(all))
	for _, s := range all {
		out = append(out, xmetrics.CacheSnapshot{
			Name:      s.Name,
			Size:      int64(s.Size),
			Hits:      s.Hits,
			Misses:    s.Misses,
			Evictions: s.Evictions,
		})
	}
	return out
}
