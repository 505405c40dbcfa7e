// Package chat 管理一次对话视图的生命周期：提交、等待提示、追加回复、失败兜底
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"moodnest-cli/internal/model"
)

// 失败时追加的固定回复
const (
	ChatFallback  = "I'm having trouble connecting right now. Please try again."
	AgentFallback = "Agent unavailable."
)

// DefaultResourceMood 未配置时资源代理使用的情绪
const DefaultResourceMood = "stress"

// AgentKind 代理类型
type AgentKind string

const (
	AgentPlanner  AgentKind = "planner"  // 每日计划
	AgentResource AgentKind = "resource" // 应对策略
)

// ErrUnknownAgent 未知的代理类型
var ErrUnknownAgent = errors.New("unknown agent")

// ParseAgentKind 解析代理类型
func ParseAgentKind(raw string) (AgentKind, error) {
	switch AgentKind(strings.ToLower(strings.TrimSpace(raw))) {
	case AgentPlanner:
		return AgentPlanner, nil
	case AgentResource:
		return AgentResource, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAgent, raw)
}

// Backend 会话依赖的后端接口
type Backend interface {
	History(ctx context.Context, userID int) ([]model.Message, error)
	Chat(ctx context.Context, userID int, message string) (string, error)
	Planner(ctx context.Context) (string, error)
	Resource(ctx context.Context, mood string) (string, error)
}

// Surface 对话记录的渲染面
type Surface interface {
	// Reset 清空已渲染的记录
	Reset()
	// Append 追加一条消息
	Append(msg model.Message)
	// ShowTyping 显示等待提示
	ShowTyping()
	// RemoveTyping 移除等待提示
	RemoveTyping()
}

// MoodSource 根据当前对话决定资源代理收到的情绪
type MoodSource func(history []model.Message) string

// StaticMood 固定情绪
func StaticMood(mood string) MoodSource {
	return func([]model.Message) string { return mood }
}

// Session 一个对话视图实例的状态
type Session struct {
	backend Backend
	surface Surface
	userID  int
	mood    MoodSource
	logger  *slog.Logger

	mu      sync.Mutex
	history  []model.Message
	appended int // 本地追加过的消息总数，只增不减
	synced   int // 上次应用历史时的 appended
	pending  int
	typing  bool
}

// Option 会话配置项
type Option func(*Session)

// WithSurface 设置渲染面
func WithSurface(surface Surface) Option {
	return func(s *Session) {
		if surface != nil {
			s.surface = surface
		}
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMoodSource 设置资源代理的情绪来源
func WithMoodSource(source MoodSource) Option {
	return func(s *Session) {
		if source != nil {
			s.mood = source
		}
	}
}

// NewSession 创建会话
func NewSession(backend Backend, userID int, opts ...Option) *Session {
	s := &Session{
		backend: backend,
		surface: discardSurface{},
		userID:  userID,
		mood:    StaticMood(DefaultResourceMood),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadHistory 拉取完整历史并替换当前记录；上次加载之后本地追加的消息接在后端记录之后，
// 已出现在后端记录末尾的不再重复。失败时只记录日志，保持现状
func (s *Session) LoadHistory(ctx context.Context) {
	messages, err := s.backend.History(ctx, s.userID)
	if err != nil {
		s.logger.Warn("failed to load history", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	local := s.history[len(s.history)-min(s.appended-s.synced, len(s.history)):]
	local = local[overlap(messages, local):]

	merged := make([]model.Message, 0, len(messages)+len(local))
	merged = append(merged, messages...)
	merged = append(merged, local...)

	s.history = merged
	s.synced = s.appended
	s.typing = false
	s.surface.Reset()
	for _, msg := range merged {
		s.surface.Append(msg)
	}
	if s.pending > 0 {
		s.typing = true
		s.surface.ShowTyping()
	}
}

// overlap 返回 local 开头已出现在 remote 末尾的消息数
func overlap(remote, local []model.Message) int {
	for n := min(len(remote), len(local)); n > 0; n-- {
		if slices.Equal(remote[len(remote)-n:], local[:n]) {
			return n
		}
	}
	return 0
}

// Send 发送用户消息并等待回复。空白输入直接忽略；失败被吸收为固定兜底回复
func (s *Session) Send(ctx context.Context, text string) {
	if run := s.Submit(ctx, text); run != nil {
		run()
	}
}

// Submit 同步追加用户消息并显示等待提示，返回发出请求的函数；空白输入返回 nil
func (s *Session) Submit(ctx context.Context, text string) func() {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	s.appendLocked(model.Message{Role: model.RoleUser, Content: text})
	s.beginLocked()
	s.mu.Unlock()

	return func() {
		reply, err := s.backend.Chat(ctx, s.userID, text)
		s.finish(ctx, "chat", reply, err, ChatFallback)
	}
}

// TriggerAgent 触发代理并等待回复；不追加用户消息，失败时回复 AgentFallback
func (s *Session) TriggerAgent(ctx context.Context, kind AgentKind) error {
	run, err := s.SubmitAgent(ctx, kind)
	if err != nil {
		return err
	}
	run()
	return nil
}

// SubmitAgent 同步显示等待提示，返回发出代理请求的函数
func (s *Session) SubmitAgent(ctx context.Context, kind AgentKind) (func(), error) {
	var call func() (string, error)
	switch kind {
	case AgentPlanner:
		call = func() (string, error) { return s.backend.Planner(ctx) }
	case AgentResource:
		mood := s.resourceMood()
		call = func() (string, error) { return s.backend.Resource(ctx, mood) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, kind)
	}

	s.mu.Lock()
	s.beginLocked()
	s.mu.Unlock()

	return func() {
		reply, err := call()
		s.finish(ctx, "agent/"+string(kind), reply, err, AgentFallback)
	}, nil
}

// History 返回当前记录的副本
func (s *Session) History() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Pending 是否有未完成的请求
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// Typing 等待提示是否可见
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

func (s *Session) resourceMood() string {
	mood := strings.TrimSpace(s.mood(s.History()))
	if mood == "" {
		return DefaultResourceMood
	}
	return mood
}

func (s *Session) beginLocked() {
	s.pending++
	if !s.typing {
		s.typing = true
		s.surface.ShowTyping()
	}
}

func (s *Session) finish(ctx context.Context, op, reply string, err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending--

	// 视图已离开：迟到的响应不再修改记录
	if ctx.Err() != nil {
		s.typing = false
		s.logger.Debug("dropping stale response", "op", op)
		return
	}

	msg := model.Message{Role: model.RoleModel, Content: reply}
	if err != nil {
		s.logger.Warn("request failed", "op", op, "err", err)
		msg.Content = fallback
	}
	s.appendLocked(msg)
}

// appendLocked 追加消息前总是先移除等待提示
func (s *Session) appendLocked(msg model.Message) {
	if s.typing {
		s.typing = false
		s.surface.RemoveTyping()
	}
	s.history = append(s.history, msg)
	s.appended++
	s.surface.Append(msg)
}

type discardSurface struct{}

func (discardSurface) Reset() {}

func (discardSurface) Append(model.Message) {}

func (discardSurface) ShowTyping() {}

func (discardSurface) RemoveTyping() {}
