package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xcachekit/pkg/lifecycle/xrun"
	"github.com/omeyang/xcachekit/pkg/observability/xlog"
	"github.com/omeyang/xcachekit/pkg/observability/xmetrics"
	"github.com/omeyang/xcachekit/pkg/storage/xcache"
)

const (
	defaultWorkloadInterval = 100 * time.Millisecond
	defaultWorkloadKeys     = 64
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "配置文件路径（.yaml / .yml / .json）",
		Required: true,
	}
}

func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "校验配置并打印每个缓存的生效选项",
		Flags: []cli.Flag{configFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdCheck(cmd.String("config"), cmd.Root().Writer)
		},
	}
}

func cmdCheck(path string, w io.Writer) error {
	cfg, err := loadAppConfig(path)
	if err != nil {
		return err
	}

	logger, _, err := cfg.Log.buildLogger(io.Discard)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}

	opts := append(cfg.Cache.RegistryOptions(), xcache.WithLogger(logger))
	registry := xcache.NewRegistry(opts...)
	if err := registry.Apply(cfg.Cache); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMAX_SIZE\tDEFAULT_TTL\tPOLICY\tUPDATE_AGE_ON_GET")
	for _, name := range registry.Names() {
		c, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		o := c.Options()
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%t\n", name, o.MaxSize, o.DefaultTTL, o.EvictionPolicy, o.UpdateAgeOnGet)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d cache(s) OK\n", len(registry.Names()))
	return nil
}

func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "运行注册表维护任务与模拟负载",
		Flags: []cli.Flag{
			configFlag(),
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "运行时长，0 表示直到收到信号",
			},
			&cli.DurationFlag{
				Name:  "workload-interval",
				Usage: "模拟负载的执行间隔",
				Value: defaultWorkloadInterval,
			},
			&cli.IntFlag{
				Name:  "keys",
				Usage: "每个缓存的模拟键空间大小",
				Value: defaultWorkloadKeys,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdRun(ctx, runParams{
				configPath: cmd.String("config"),
				duration:   cmd.Duration("duration"),
				interval:   cmd.Duration("workload-interval"),
				keys:       cmd.Int("keys"),
				logOutput:  cmd.Root().ErrWriter,
			})
		},
	}
}

type runParams struct {
	configPath string
	duration   time.Duration
	interval   time.Duration
	keys       int
	logOutput  io.Writer
	runOptions []xrun.Option
}

func cmdRun(ctx context.Context, p runParams) error {
	if p.duration < 0 {
		return &usageError{msg: "--duration 不能为负"}
	}
	if p.interval <= 0 {
		return &usageError{msg: "--workload-interval 必须为正"}
	}
	if p.keys <= 0 {
		return &usageError{msg: "--keys 必须为正"}
	}

	cfg, err := loadAppConfig(p.configPath)
	if err != nil {
		return err
	}

	logger, cleanup, err := cfg.Log.buildLogger(p.logOutput)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer func() { _ = cleanup() }()

	// ManualReader 只在退出时采集一次，作为本次运行的指标汇总
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	observer, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(provider))
	if err != nil {
		return err
	}

	opts := append(cfg.Cache.RegistryOptions(), xcache.WithLogger(logger), xcache.WithObserver(observer))
	registry := xcache.NewRegistry(opts...)
	if err := registry.Apply(cfg.Cache); err != nil {
		return err
	}

	registration, err := xmetrics.RegisterCacheMetrics(registry, xmetrics.WithMeterProvider(provider))
	if err != nil {
		return err
	}
	defer func() { _ = registration.Unregister() }()

	if p.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.duration)
		defer cancel()
	}

	load := newWorkload(registry, p.keys, time.Now().UnixNano())
	logger.Info(ctx, "xcachectl running",
		slog.String("config", p.configPath),
		xlog.Count(len(registry.Names())),
		slog.Duration("workload_interval", p.interval),
	)

	runOpts := append([]xrun.Option{xrun.WithName("xcachectl"), xrun.WithLogger(logger)}, p.runOptions...)
	err = xrun.RunServicesWithOptions(ctx, runOpts,
		registry,
		xrun.ServiceFunc(xrun.Ticker(p.interval, true, load.step)),
	)

	registry.Report(context.Background())
	logMetrics(logger, reader)

	switch {
	case err == nil, errors.Is(err, xrun.ErrSignal), errors.Is(err, context.DeadlineExceeded):
		logger.Info(context.Background(), "xcachectl stopped", slog.Int("steps", load.steps()))
		return nil
	default:
		return err
	}
}

// logMetrics 采集一次缓存指标并逐条输出。
func logMetrics(logger xlog.Logger, reader *sdkmetric.ManualReader) {
	ctx := context.Background()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		logger.Warn(ctx, "collect metrics failed", xlog.Err(err))
		return
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			var points []metricdata.DataPoint[int64]
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				points = data.DataPoints
			case metricdata.Gauge[int64]:
				points = data.DataPoints
			default:
				continue
			}
			for _, dp := range points {
				attrs := []slog.Attr{slog.String("metric", m.Name), slog.Int64("value", dp.Value)}
				if v, ok := dp.Attributes.Value(attribute.Key(xlog.KeyCache)); ok {
					attrs = append(attrs, xlog.Cache(v.AsString()))
				}
				for _, key := range []string{"operation", "status"} {
					if v, ok := dp.Attributes.Value(attribute.Key(key)); ok {
						attrs = append(attrs, slog.String(key, v.AsString()))
					}
				}
				logger.Info(ctx, "metric", attrs...)
			}
		}
	}
}
