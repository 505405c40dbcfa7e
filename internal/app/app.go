// Package app 交互式终端客户端：读取输入行，分发到视图控制器、对话会话和各视图的渲染
package app

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"moodnest-cli/internal/analytics"
	"moodnest-cli/internal/chat"
	"moodnest-cli/internal/export"
	"moodnest-cli/internal/model"
	"moodnest-cli/internal/mood"
	"moodnest-cli/internal/system"
	"moodnest-cli/internal/terminal"
	"moodnest-cli/internal/view"
)

// Backend 客户端依赖的全部后端接口
type Backend interface {
	chat.Backend
	Analytics(ctx context.Context, userID int) ([]model.MoodRecord, error)
	System(ctx context.Context) (*model.SystemStatus, error)
	Export(ctx context.Context, userID int) (json.RawMessage, error)
}

// Options 运行参数
type Options struct {
	UserID         int
	Locale         string
	ResourceMood   string
	InferMood      bool
	ExportDir      string
	StatusInterval time.Duration
	Logger         *slog.Logger
}

// HelpText /help 的输出
const HelpText = `Commands:
  /chat                 open the chat view
  /analytics            open the mood analytics view
  /system               open the system status view
  /plan                 ask for a daily plan (chat view)
  /cope [mood]          ask for a coping strategy (chat view)
  /export               download your data as JSON
  /help                 show this help
  /quit                 exit
Any other line is sent as a chat message while the chat view is open.`

// App 交互式客户端
type App struct {
	ctx      context.Context
	backend  Backend
	term     *terminal.Terminal
	opts     Options
	logger   *slog.Logger
	ctrl     *view.Controller
	poller   *system.Poller
	exporter *export.Exporter

	mu           sync.Mutex
	session      *chat.Session
	resourceMood string

	wg sync.WaitGroup
}

// New 创建客户端；ctx 取消时所有视图作用域随之取消
func New(ctx context.Context, backend Backend, term *terminal.Terminal, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ResourceMood == "" {
		opts.ResourceMood = chat.DefaultResourceMood
	}

	a := &App{
		ctx:          ctx,
		backend:      backend,
		term:         term,
		opts:         opts,
		logger:       opts.Logger,
		poller:       system.NewPoller(backend, opts.StatusInterval, opts.Logger),
		exporter:     export.NewExporter(backend, opts.ExportDir, opts.UserID),
		resourceMood: opts.ResourceMood,
	}
	a.ctrl = view.NewController(ctx, a.render)
	return a
}

// Run 进入聊天视图并逐行处理输入，直到 /quit 或输入结束
func (a *App) Run(in io.Reader) error {
	defer a.Wait()
	defer a.ctrl.Close()

	if err := a.ctrl.Navigate(view.Chat); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !a.Handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Wait 等待所有后台请求结束
func (a *App) Wait() {
	a.wg.Wait()
}

// Close 取消当前视图
func (a *App) Close() {
	a.ctrl.Close()
}

// Navigate 切换视图
func (a *App) Navigate(v view.View) error {
	return a.ctrl.Navigate(v)
}

// Handle 处理一行输入；返回 false 表示退出
func (a *App) Handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, "/") {
		a.send(line)
		return true
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/chat", "/analytics", "/system":
		v, _ := view.ParseView(strings.TrimPrefix(name, "/"))
		if err := a.ctrl.Navigate(v); err != nil {
			a.term.Println(err.Error())
		}
	case "/plan":
		a.agent(chat.AgentPlanner)
	case "/cope":
		if arg != "" {
			a.mu.Lock()
			a.resourceMood = arg
			a.mu.Unlock()
		}
		a.agent(chat.AgentResource)
	case "/export":
		a.export()
	case "/help":
		a.term.Println(HelpText)
	case "/quit", "/exit":
		return false
	default:
		a.term.Println(fmt.Sprintf("Unknown command %s. Type /help for the list.", name))
	}
	return true
}

// render 视图控制器的渲染入口
func (a *App) render(ctx context.Context, plan view.RenderPlan) {
	pane := a.term.Mount(plan)

	var session *chat.Session
	if plan.LoadHistory {
		session = chat.NewSession(a.backend, a.opts.UserID,
			chat.WithSurface(pane),
			chat.WithLogger(a.logger),
			chat.WithMoodSource(a.moodSource()),
		)
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	switch {
	case plan.LoadHistory:
		a.spawn(func() { session.LoadHistory(ctx) })
	case plan.LoadAnalytics:
		a.spawn(func() { a.loadAnalytics(ctx, pane) })
	case plan.LoadSystem:
		a.spawn(func() { a.poller.Watch(ctx, pane.RenderSystem) })
	}
}

func (a *App) loadAnalytics(ctx context.Context, pane *terminal.Pane) {
	records, err := a.backend.Analytics(ctx, a.opts.UserID)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.logger.Warn("failed to load analytics", "err", err)
		pane.Notice(analytics.LoadFailedMessage)
		return
	}
	pane.RenderAnalytics(analytics.Summarize(records), analytics.Trend(records, a.opts.Locale))
}

func (a *App) send(text string) {
	session, ctx := a.activeSession()
	if session == nil {
		a.term.Println("Open the chat view with /chat to send messages.")
		return
	}
	if run := session.Submit(ctx, text); run != nil {
		a.spawn(run)
	}
}

func (a *App) agent(kind chat.AgentKind) {
	session, ctx := a.activeSession()
	if session == nil {
		a.term.Println("Agents are available in the chat view. Type /chat first.")
		return
	}
	run, err := session.SubmitAgent(ctx, kind)
	if err != nil {
		a.term.Println(err.Error())
		return
	}
	a.spawn(run)
}

// export 不随视图切换取消
func (a *App) export() {
	a.spawn(func() {
		path, err := a.exporter.Export(a.ctx)
		if err != nil {
			a.logger.Warn("failed to export data", "err", err)
			a.term.Println(export.FailedMessage)
			return
		}
		a.term.Println("Data exported to " + path)
	})
}

// activeSession 当前聊天视图的会话及其作用域；不在聊天视图时返回 nil
func (a *App) activeSession() (*chat.Session, context.Context) {
	ctx := a.ctrl.Context()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session, ctx
}

func (a *App) moodSource() chat.MoodSource {
	return func(history []model.Message) string {
		a.mu.Lock()
		fallback := a.resourceMood
		a.mu.Unlock()
		if a.opts.InferMood {
			return mood.Infer(history, fallback)
		}
		return fallback
	}
}

func (a *App) spawn(fn func()) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn()
	}()
}
