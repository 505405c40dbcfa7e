package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"moodnest-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "显示当前生效的配置",
	Run:   runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg := config.Get()

	fmt.Println("╔════════════════════════════════════════════════╗")
	fmt.Println("║              MoodNest 配置信息                  ║")
	fmt.Println("╠════════════════════════════════════════════════╣")
	fmt.Printf("║  配置文件: %s\n", config.Path())
	fmt.Printf("║  后端地址: %s\n", cfg.Server.URL)
	fmt.Printf("║  请求超时: %s\n", cfg.Server.Timeout)
	fmt.Printf("║  用户 ID:  %d\n", cfg.User.ID)
	fmt.Printf("║  区域:     %s\n", cfg.UI.Locale)
	fmt.Printf("║  刷新间隔: %s\n", cfg.UI.StatusInterval)
	fmt.Printf("║  默认情绪: %s (推断: %t)\n", cfg.Agent.ResourceMood, cfg.Agent.InferMood)
	fmt.Printf("║  导出目录: %s\n", cfg.Export.Dir)
	fmt.Printf("║  日志级别: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Printf("║  日志文件: %s\n", cfg.Log.File)
	}
	fmt.Println("╚════════════════════════════════════════════════╝")
}
