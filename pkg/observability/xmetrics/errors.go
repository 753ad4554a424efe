package xmetrics

import "errors"

var (
	// ErrCreateInstrument 创建 OTel 指标失败。
	ErrCreateInstrument = errors.New("xmetrics: create instrument failed")
	// ErrRegisterCallback 注册异步采集回调失败。
	ErrRegisterCallback = errors.New("xmetrics: register callback failed")
	// ErrNilSource CacheSource 为 nil。
	ErrNilSource = errors.New("xmetrics: nil cache source")
)
