package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moodnest-cli/internal/chat"
	"moodnest-cli/internal/config"
	"moodnest-cli/internal/model"
	"moodnest-cli/internal/mood"
	"moodnest-cli/internal/terminal"
	"moodnest-cli/internal/view"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "发送一条消息并打印回复",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runOneShot(func(ctx context.Context, s *chat.Session) {
			s.Send(ctx, strings.Join(args, " "))
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "打印完整对话记录",
	Run: func(cmd *cobra.Command, args []string) {
		runOneShot(func(ctx context.Context, s *chat.Session) {
			s.LoadHistory(ctx)
			if len(s.History()) == 0 {
				fmt.Println("No conversation yet.")
			}
		})
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "获取当天的计划",
	Run: func(cmd *cobra.Command, args []string) {
		runOneShot(func(ctx context.Context, s *chat.Session) {
			if err := triggerAgent(ctx, s, chat.AgentPlanner); err != nil {
				fail(err)
			}
		})
	},
}

var copeCmd = &cobra.Command{
	Use:   "cope [mood]",
	Short: "获取与情绪对应的应对策略",
	Long: `获取应对策略。

不指定情绪时使用配置项 agent.resource_mood。
使用 --save 把指定的情绪保存为默认值。`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCope,
}

func init() {
	copeCmd.Flags().Bool("save", false, "保存为默认情绪")
	rootCmd.AddCommand(chatCmd, historyCmd, planCmd, copeCmd)
}

func runCope(cmd *cobra.Command, args []string) {
	moodText := config.Get().Agent.ResourceMood
	if len(args) == 1 {
		moodText = args[0]
		if save, _ := cmd.Flags().GetBool("save"); save {
			if err := config.SaveResourceMood(moodText); err != nil {
				fmt.Fprintf(os.Stderr, "保存配置失败: %v\n", err)
				os.Exit(1)
			}
		}
	}

	fmt.Printf("Category: %s\n\n", mood.Categorize(moodText).Title())
	runOneShot(func(ctx context.Context, s *chat.Session) {
		if err := triggerAgent(ctx, s, chat.AgentResource); err != nil {
			fail(err)
		}
	}, chat.WithMoodSource(chat.StaticMood(moodText)))
}

// triggerAgent 调用代理；回复或兜底文案已写入渲染面，只有未知代理类型会返回错误
func triggerAgent(ctx context.Context, s *chat.Session, kind chat.AgentKind) error {
	if err := s.TriggerAgent(ctx, kind); err != nil {
		return fmt.Errorf("调用代理失败: %w", err)
	}
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "✗ %v\n", err)
	closeLog()
	os.Exit(1)
}

// runOneShot 以聊天视图的渲染面执行一次会话操作
func runOneShot(fn func(ctx context.Context, s *chat.Session), opts ...chat.Option) {
	cfg := config.Get()

	ctx, stop := signalContext()
	defer stop()

	pane := terminal.NewTerminal(os.Stdout).Mount(view.RenderPlan{View: view.Chat})
	opts = append([]chat.Option{
		chat.WithSurface(pane),
		chat.WithLogger(logger),
		chat.WithMoodSource(func(history []model.Message) string {
			if cfg.Agent.InferMood {
				return mood.Infer(history, cfg.Agent.ResourceMood)
			}
			return cfg.Agent.ResourceMood
		}),
	}, opts...)

	fn(ctx, chat.NewSession(newClient(), cfg.User.ID, opts...))
}
