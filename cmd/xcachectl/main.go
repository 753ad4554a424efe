// xcachectl 用于校验缓存注册表配置，并在模拟负载下运行注册表。
//
// 用法:
//
//	xcachectl <命令> --config FILE [命令参数]
//
// 命令:
//
//	check    加载并校验配置，打印每个缓存的生效选项
//	run      按配置创建注册表，运行维护任务与模拟负载，直到收到信号或到达 --duration
//
// 退出码:
//
//	0: 成功（包括收到 SIGINT/SIGTERM 的正常退出）
//	1: 配置或运行错误
//	2: 参数错误
//
// 示例:
//
//	xcachectl check -c testdata/example.yaml
//	xcachectl run -c testdata/example.yaml --duration 30s --workload-interval 50ms
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息，可通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xcachectl",
		Usage:   "具名进程内缓存注册表工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Commands: []*cli.Command{
			createCheckCommand(),
			createRunCommand(),
		},
		// 退出码由 run 统一映射
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func run(ctx context.Context, args []string) int {
	app := createApp()
	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// usageError 参数错误，对应退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }
