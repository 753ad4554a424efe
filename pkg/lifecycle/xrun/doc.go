// Package xrun 管理进程内多个长期运行服务的生命周期。
//
// Group 基于 errgroup：任一服务返回错误或收到退出信号时，
// 其余服务通过 ctx 收到取消并优雅退出。
//
//	err := xrun.RunServicesWithOptions(ctx,
//		[]xrun.Option{xrun.WithName("xcachectl"), xrun.WithLogger(logger)},
//		registry,
//		xrun.ServiceFunc(xrun.Ticker(time.Second, false, workload)),
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//		// 正常的信号退出
//	}
//
// Wait 会过滤因取消产生的 context.Canceled，但保留通过 Cancel(cause)
// 或信号处理设置的退出原因。
package xrun
