package cmd

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"moodnest-cli/internal/config"
	"moodnest-cli/internal/stubserver"
)

var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "启动内存版后端，用于本地演示",
	Long: `启动一个内存版的 MoodNest 后端。

数据只保存在进程内，退出即丢失。对话回复来自固定模板，
情绪打分基于关键字，系统状态读取本机 CPU 和内存。`,
	Run: runStubServer,
}

func init() {
	stubServerCmd.Flags().String("addr", "", "监听地址 (默认: 配置项 stub.addr)")
	stubServerCmd.Flags().Bool("debug", false, "gin 调试模式")
	rootCmd.AddCommand(stubServerCmd)
}

func runStubServer(cmd *cobra.Command, args []string) {
	addr := config.Get().Stub.Addr
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("🌿 MoodNest stub server on http://%s/api (Ctrl+C 退出)\n", addr)
	if err := stubserver.New(nil, stubserver.WithLogger(logger)).Run(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "✗ 启动失败: %v\n", err)
		os.Exit(1)
	}
}
