package main

import (
	"fmt"
	"io"

	"github.com/omeyang/xcachekit/pkg/config/xconf"
	"github.com/omeyang/xcachekit/pkg/observability/xlog"
	"github.com/omeyang/xcachekit/pkg/storage/xcache"
)

// appConfig 配置文件结构：
//
//	log:
//	  level: info
//	  format: json
//	  file: /var/log/xcachectl.log
//	maintenance: ...
//	caches: ...
//
// maintenance 与 caches 由 xcache.LoadConfig 解析。
type appConfig struct {
	Log   logConfig
	Cache *xcache.Config
}

type logConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   *bool  `koanf:"compress"`
}

func loadAppConfig(path string) (*appConfig, error) {
	if path == "" {
		return nil, &usageError{msg: "缺少 --config"}
	}

	cfg, err := xconf.New(path)
	if err != nil {
		return nil, err
	}

	var lc logConfig
	if err := cfg.Unmarshal("log", &lc); err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	cacheCfg, err := xcache.LoadConfig(cfg, "")
	if err != nil {
		return nil, err
	}
	return &appConfig{Log: lc, Cache: cacheCfg}, nil
}

// buildLogger 按 log 配置构建日志；未配置 file 时写入 fallback。
func (lc logConfig) buildLogger(fallback io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetLevelString(lc.Level).
		SetFormat(lc.Format)

	if lc.File == "" {
		b.SetOutput(fallback)
		return b.Build()
	}

	var opts []xlog.RotationOption
	if lc.MaxSizeMB > 0 {
		opts = append(opts, xlog.WithMaxSize(lc.MaxSizeMB))
	}
	if lc.MaxBackups > 0 {
		opts = append(opts, xlog.WithMaxBackups(lc.MaxBackups))
	}
	if lc.MaxAgeDays > 0 {
		opts = append(opts, xlog.WithMaxAge(lc.MaxAgeDays))
	}
	if lc.Compress != nil {
		opts = append(opts, xlog.WithCompress(*lc.Compress))
	}
	return b.SetRotation(lc.File, opts...).Build()
}
