package xlog

import (
	"log/slog"
	"time"
)

// 标准字段名。
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyOperation = "operation"

	// KeyCache 缓存名称
	KeyCache = "cache"
	// KeyKey 缓存键
	KeyKey = "key"
	// KeyRegistry 注册表实例 ID
	KeyRegistry = "registry"
)

// Err 创建错误属性，err 为 nil 时返回空属性（被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性，以可读字符串输出（如 "1.5s"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Count 创建计数属性。
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Component 创建组件名属性。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性。
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Cache 创建缓存名属性。
func Cache(name string) slog.Attr {
	return slog.String(KeyCache, name)
}

// Key 创建缓存键属性。
func Key(key string) slog.Attr {
	return slog.String(KeyKey, key)
}
