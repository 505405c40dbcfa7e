package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"moodnest-cli/internal/config"
	"moodnest-cli/internal/system"
	"moodnest-cli/internal/terminal"
	"moodnest-cli/internal/view"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "显示后端运行状态",
	Long: `显示后端运行状态。

包括：
- 服务状态与平台
- CPU 和内存占用
- 运行时长（如果后端提供）

使用 --watch 按 ui.status_interval 持续刷新，Ctrl+C 退出。`,
	Run: runStatus,
}

func init() {
	statusCmd.Flags().BoolP("watch", "w", false, "持续刷新")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	ctx, stop := signalContext()
	defer stop()

	interval := config.Get().UI.StatusInterval
	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		interval = 0
	}

	pane := terminal.NewTerminal(os.Stdout).Mount(view.RenderPlan{View: view.System})
	system.NewPoller(newClient(), interval, logger).Watch(ctx, pane.RenderSystem)
}
