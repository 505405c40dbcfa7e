// Package system 拉取后端运行状态
package system

import (
	"context"
	"log/slog"
	"time"

	"moodnest-cli/internal/model"
)

// Source 状态来源
type Source interface {
	System(ctx context.Context) (*model.SystemStatus, error)
}

// Poller 状态拉取器；失败只记日志，返回 nil
type Poller struct {
	src      Source
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller 创建拉取器，interval <= 0 时 Watch 只拉取一次
func NewPoller(src Source, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{src: src, interval: interval, logger: logger}
}

// Fetch 拉取一次状态
func (p *Poller) Fetch(ctx context.Context) *model.SystemStatus {
	status, err := p.src.System(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("failed to load system status", "err", err)
		}
		return nil
	}
	return status
}

// Watch 立即拉取一次，之后按间隔拉取，直到 ctx 取消
func (p *Poller) Watch(ctx context.Context, fn func(*model.SystemStatus)) {
	emit := func() bool {
		status := p.Fetch(ctx)
		if ctx.Err() != nil {
			return false
		}
		fn(status)
		return true
	}

	if !emit() || p.interval <= 0 {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
