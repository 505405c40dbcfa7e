// Package cmd 实现 CLI 命令
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moodnest-cli/internal/api"
	"moodnest-cli/internal/app"
	"moodnest-cli/internal/config"
	"moodnest-cli/internal/logging"
	"moodnest-cli/internal/terminal"
)

var rootCmd = &cobra.Command{
	Use:   "moodnest",
	Short: "MoodNest - 终端里的情绪陪伴助手",
	Long: `MoodNest CLI 客户端

直接运行进入交互界面，包含三个视图：
- Chat       与陪伴助手对话，可获取每日计划和应对策略
- Analytics  情绪打分统计、趋势与分布
- System     后端运行状态

输入 /help 查看可用命令。`,
	Run: runInteractive,
}

var (
	logger    = slog.Default()
	logCloser io.Closer
)

// Execute 执行根命令
func Execute() {
	defer closeLog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// 全局参数
	rootCmd.PersistentFlags().StringP("server", "s", "", "后端地址 (默认: "+config.DefaultServerURL+")")
}

func initConfig() {
	if err := config.Init(""); err != nil {
		fmt.Fprintf(os.Stderr, "初始化配置失败: %v\n", err)
		os.Exit(1)
	}

	// 如果指定了后端地址，覆盖配置
	if server, _ := rootCmd.PersistentFlags().GetString("server"); server != "" {
		config.SetServerURL(server)
	}

	cfg := config.Get()
	l, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger, logCloser = l, closer
	slog.SetDefault(logger)
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// newClient 按当前配置创建 API 客户端
func newClient() *api.Client {
	cfg := config.Get()
	return api.NewClient(cfg.Server.URL, cfg.Server.Timeout)
}

// signalContext 收到 SIGINT/SIGTERM 时取消
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runInteractive 交互式主流程
func runInteractive(cmd *cobra.Command, args []string) {
	cfg := config.Get()

	ctx, stop := signalContext()
	defer stop()

	client := newClient()
	logger.Info("starting interactive client", "server", client.BaseURL())

	a := app.New(ctx, client, terminal.NewTerminal(os.Stdout), app.Options{
		UserID:         cfg.User.ID,
		Locale:         cfg.UI.Locale,
		ResourceMood:   cfg.Agent.ResourceMood,
		InferMood:      cfg.Agent.InferMood,
		ExportDir:      cfg.Export.Dir,
		StatusInterval: cfg.UI.StatusInterval,
		Logger:         logger,
	})

	// 标准输入读取会阻塞，收到信号时直接退出
	done := make(chan error, 1)
	go func() {
		done <- a.Run(os.Stdin)
	}()

	select {
	case err := <-done:
		if err != nil {
			fmt.Fprintf(os.Stderr, "读取输入失败: %v\n", err)
		}
	case <-ctx.Done():
		a.Close()
	}
	fmt.Println()
	fmt.Println("Take care. 👋")
}
