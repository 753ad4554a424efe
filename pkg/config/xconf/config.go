package xconf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/v2"
)

// Format 配置格式。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath 根据扩展名推断格式（.yaml / .yml / .json）。
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

func (f Format) valid() bool {
	return f == FormatYAML || f == FormatJSON
}

// Config 配置接口。
type Config interface {
	// Client 返回当前配置快照的 koanf 实例。Reload 后旧实例仍可读，但数据已过期。
	Client() *koanf.Koanf

	// Unmarshal 将 path 下的配置解码到 target，path 为空表示整个配置。
	Unmarshal(path string, target any) error

	// Exists 报告 path 是否存在。
	Exists(path string) bool

	// Reload 重新读取文件。
	Reload() error

	// Path 返回文件路径，从字节创建时为空。
	Path() string

	Format() Format
}

// Options 加载选项。
type Options struct {
	// Delim 键路径分隔符，默认 "."。
	Delim string
	// Tag 结构体标签，默认 "koanf"。
	Tag string
}

// Option 加载选项函数。
type Option func(*Options)

// WithDelim 设置键路径分隔符，空值被忽略。
func WithDelim(delim string) Option {
	return func(o *Options) {
		if delim != "" {
			o.Delim = delim
		}
	}
}

// WithTag 设置结构体标签名，空值被忽略。
func WithTag(tag string) Option {
	return func(o *Options) {
		if tag != "" {
			o.Tag = tag
		}
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Delim: ".", Tag: "koanf"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
