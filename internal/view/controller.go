// Package view 管理当前视图状态，并把状态映射为渲染计划
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// View 视图标识
type View string

const (
	Chat      View = "chat"
	Analytics View = "analytics"
	System    View = "system"
)

// All 导航栏中的视图顺序
var All = []View{Chat, Analytics, System}

var labels = map[View]string{
	Chat:      "Chat",
	Analytics: "Analytics",
	System:    "System",
}

// ErrUnknownView 未知视图
var ErrUnknownView = errors.New("unknown view")

// ParseView 解析视图名称
func ParseView(raw string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := labels[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, raw)
	}
	return v, nil
}

// Label 展示名称
func (v View) Label() string {
	return labels[v]
}

// State 应用状态，只包含当前视图
type State struct {
	Active View
}

// NavItem 导航项
type NavItem struct {
	View   View
	Label  string
	Active bool
}

// RenderPlan 渲染某个视图需要做的事情
type RenderPlan struct {
	View          View
	Nav           []NavItem
	LoadHistory   bool // 拉取对话历史
	LoadAnalytics bool // 拉取情绪记录
	LoadSystem    bool // 拉取系统状态
	AgentActions  bool // 显示代理入口
}

// Plan 根据状态生成渲染计划，不产生副作用
func Plan(state State) RenderPlan {
	plan := RenderPlan{View: state.Active}
	for _, v := range All {
		plan.Nav = append(plan.Nav, NavItem{View: v, Label: v.Label(), Active: v == state.Active})
	}
	switch state.Active {
	case Chat:
		plan.LoadHistory = true
		plan.AgentActions = true
	case Analytics:
		plan.LoadAnalytics = true
	case System:
		plan.LoadSystem = true
	}
	return plan
}

// Renderer 视图的渲染入口；ctx 在离开该视图时取消
type Renderer func(ctx context.Context, plan RenderPlan)

// Controller 持有当前视图，并为每次挂载提供独立的取消作用域
type Controller struct {
	parent context.Context
	render Renderer

	mu     sync.Mutex
	state  State
	ctx    context.Context
	cancel context.CancelFunc
}

// NewController 创建控制器，parent 取消时所有视图作用域随之取消
func NewController(parent context.Context, render Renderer) *Controller {
	ctx, cancel := context.WithCancel(parent)
	cancel()
	return &Controller{
		parent: parent,
		render: render,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Navigate 切换视图：取消旧视图的作用域并重新渲染；切到当前视图同样重新渲染
func (c *Controller) Navigate(v View) error {
	if _, ok := labels[v]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}

	c.mu.Lock()
	c.cancel()
	ctx, cancel := context.WithCancel(c.parent)
	c.state = State{Active: v}
	c.ctx = ctx
	c.cancel = cancel
	plan := Plan(c.state)
	c.mu.Unlock()

	c.render(ctx, plan)
	return nil
}

// State 当前状态
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Context 当前视图的作用域
func (c *Controller) Context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

// Close 取消当前视图
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
}
