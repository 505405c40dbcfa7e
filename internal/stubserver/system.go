package stubserver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"moodnest-cli/internal/model"
)

// Probe 采集主机状态
type Probe func(ctx context.Context) (*model.SystemStatus, error)

// 与一次 CPU 采样的窗口一致
const cpuSampleWindow = 100 * time.Millisecond

// HostProbe 通过 gopsutil 读取本机 CPU、内存与运行时长
func HostProbe(ctx context.Context) (*model.SystemStatus, error) {
	percents, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return nil, fmt.Errorf("cpu percent: %w", err)
	}
	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	status := &model.SystemStatus{
		Status:        "online",
		Platform:      cases.Title(language.English).String(runtime.GOOS),
		CPUPercent:    round2(cpuPercent),
		MemoryPercent: round2(vm.UsedPercent),
	}

	// 运行时长不是必需字段，读取失败时省略
	if secs, err := host.UptimeWithContext(ctx); err == nil {
		status.Uptime = (time.Duration(secs) * time.Second).String()
	}
	return status, nil
}
