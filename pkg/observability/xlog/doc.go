// Package xlog 提供基于 log/slog 的结构化日志。
//
// # 设计
//
//   - 所有方法显式接收 context.Context
//   - 方法只接受 slog.Attr，避免隐式 key-value 转换
//   - Builder 构建，支持动态级别、text/json 格式、lumberjack 文件轮转
//   - 写入失败不向调用方返回错误，通过 SetOnError 回调和内部计数暴露
//
// # 使用示例
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xcachekit/app.log", xlog.WithMaxSize(100)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
//	logger.Info(ctx, "cache created", xlog.Cache("sessions"), xlog.Count(3))
//
// # 全局 Logger
//
// Default 返回惰性初始化的全局 Logger（stderr、Info、text），
// 适用于命令行工具；库代码应通过依赖注入持有 Logger。
package xlog
