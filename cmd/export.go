package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"moodnest-cli/internal/config"
	"moodnest-cli/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出全部对话和情绪记录为 JSON 文件",
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringP("dir", "d", "", "导出目录 (默认: 配置项 export.dir)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := config.Get()

	dir := cfg.Export.Dir
	if d, _ := cmd.Flags().GetString("dir"); d != "" {
		dir = d
	}

	ctx, stop := signalContext()
	defer stop()

	path, err := export.NewExporter(newClient(), dir, cfg.User.ID).Export(ctx)
	if err != nil {
		logger.Warn("failed to export data", "err", err)
		fmt.Fprintln(os.Stderr, export.FailedMessage)
		os.Exit(1)
	}
	fmt.Printf("✓ 已导出到 %s\n", path)
}
