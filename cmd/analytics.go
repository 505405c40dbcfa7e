package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"moodnest-cli/internal/analytics"
	"moodnest-cli/internal/config"
	"moodnest-cli/internal/terminal"
	"moodnest-cli/internal/view"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "显示情绪统计、趋势和分布",
	Run:   runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, args []string) {
	cfg := config.Get()

	ctx, stop := signalContext()
	defer stop()

	records, err := newClient().Analytics(ctx, cfg.User.ID)
	if err != nil {
		logger.Warn("failed to load analytics", "err", err)
		fmt.Fprintln(os.Stderr, analytics.LoadFailedMessage)
		os.Exit(1)
	}

	pane := terminal.NewTerminal(os.Stdout).Mount(view.RenderPlan{View: view.Analytics})
	pane.RenderAnalytics(analytics.Summarize(records), analytics.Trend(records, cfg.UI.Locale))
}
