package xcache

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omeyang/xcachekit/pkg/observability/xlog"
	"github.com/omeyang/xcachekit/pkg/observability/xmetrics"
)

// 维护任务默认周期。
const (
	// DefaultSweepInterval 默认过期清理周期。
	DefaultSweepInterval = 60 * time.Second

	// DefaultReportInterval 默认统计上报周期。
	DefaultReportInterval = 300 * time.Second
)

// registryOptions 注册表配置。
type registryOptions struct {
	clock          clockwork.Clock
	logger         xlog.Logger
	observer       xmetrics.Observer
	sweepInterval  time.Duration
	reportInterval time.Duration
}

// defaultRegistryOptions 返回默认注册表配置。
// logger 为 nil 表示使用 xlog.Default()，在 NewRegistry 时解析。
func defaultRegistryOptions() *registryOptions {
	return &registryOptions{
		clock:          clockwork.NewRealClock(),
		observer:       xmetrics.NoopObserver{},
		sweepInterval:  DefaultSweepInterval,
		reportInterval: DefaultReportInterval,
	}
}

// RegistryOption 定义注册表配置函数类型。
type RegistryOption func(*registryOptions)

// WithClock 设置时钟，用于计算过期时间。
// 测试中可传入 clockwork.NewFakeClock() 以确定性地推进时间。
// 维护任务的调度周期不受此时钟影响。
func WithClock(clock clockwork.Clock) RegistryOption {
	return func(o *registryOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger 设置日志记录器，用于缓存创建、维护任务和统计上报。
// 默认使用 xlog.Default()。
func WithLogger(logger xlog.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置维护任务的观测器（链路 + 指标）。
// 默认为 xmetrics.NoopObserver。
func WithObserver(observer xmetrics.Observer) RegistryOption {
	return func(o *registryOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithSweepInterval 设置过期清理周期。非正值被忽略。
//
// 调度精度为秒，不足整秒的部分向上取整（1500ms 按 2s 执行）。
func WithSweepInterval(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// WithReportInterval 设置统计上报周期。非正值被忽略。
//
// 调度精度为秒，不足整秒的部分向上取整（1500ms 按 2s 执行）。
func WithReportInterval(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		if d > 0 {
			o.reportInterval = d
		}
	}
}
