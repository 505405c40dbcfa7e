// Package terminal 提供三个视图在终端上的渲染面
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"moodnest-cli/internal/analytics"
	"moodnest-cli/internal/model"
	"moodnest-cli/internal/view"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
	clearScreen  = "\033[H\033[2J"
	clearLine    = "\r\033[K"
)

// Terminal 终端渲染面；同一时刻只有最近挂载的 Pane 可以写入
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	tty    bool
	width  int
	active *Pane
	typing bool // 等待提示是否停留在当前行
}

// NewTerminal 创建终端渲染面；out 为终端时启用清屏和行内擦除
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out, width: defaultWidth}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.tty = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			t.width = width
		}
	}
	return t
}

// SetWidth 设置渲染宽度
func (t *Terminal) SetWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width > 0 {
		t.width = width
	}
}

// Mount 挂载新视图，之前的 Pane 随即失效
func (t *Terminal) Mount(plan view.RenderPlan) *Pane {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := &Pane{term: t, plan: plan}
	t.active = p
	t.typing = false
	p.header()
	return p
}

// Println 在任何视图下输出一行提示
func (t *Terminal) Println(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dropTypingLine()
	fmt.Fprintln(t.out, text)
}

func (t *Terminal) dropTypingLine() {
	if !t.typing {
		return
	}
	t.typing = false
	if t.tty {
		io.WriteString(t.out, clearLine)
	} else {
		io.WriteString(t.out, "\n")
	}
}

// Pane 一个已挂载视图的渲染面
type Pane struct {
	term *Terminal
	plan view.RenderPlan
}

// View 所属视图
func (p *Pane) View() view.View {
	return p.plan.View
}

// Mounted 是否仍是当前视图
func (p *Pane) Mounted() bool {
	p.term.mu.Lock()
	defer p.term.mu.Unlock()
	return p.term.active == p
}

// write 在持锁状态下写入；视图已切换时静默丢弃
func (p *Pane) write(fn func(w io.Writer, width int)) {
	t := p.term
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != p {
		return
	}
	t.dropTypingLine()
	fn(t.out, t.width)
}

func (p *Pane) header() {
	t := p.term
	if t.tty {
		io.WriteString(t.out, clearScreen)
	}
	var nav []string
	for _, item := range p.plan.Nav {
		if item.Active {
			nav = append(nav, "["+item.Label+"]")
		} else {
			nav = append(nav, " "+item.Label+" ")
		}
	}
	fmt.Fprintf(t.out, "MoodNest  %s\n", strings.Join(nav, "  "))
	fmt.Fprintln(t.out, strings.Repeat("─", min(t.width, 60)))
	if p.plan.AgentActions {
		fmt.Fprintln(t.out, "  /plan  Daily Plan    /cope  Coping Strategy")
	}
}

// --- 对话视图 ---

// Reset 清空对话记录
func (p *Pane) Reset() {
	p.write(func(w io.Writer, width int) {
		if p.term.tty {
			p.header()
			return
		}
		fmt.Fprintln(w, strings.Repeat("·", min(width, 60)))
	})
}

// Append 追加一条消息
func (p *Pane) Append(msg model.Message) {
	p.write(func(w io.Writer, width int) {
		prefix := "nest › "
		if msg.IsUser() {
			prefix = " you › "
		}
		indent := strings.Repeat(" ", len([]rune(prefix)))
		for i, line := range wrap(msg.Content, width-len(indent)) {
			if i == 0 {
				fmt.Fprintf(w, "%s%s\n", prefix, line)
			} else {
				fmt.Fprintf(w, "%s%s\n", indent, line)
			}
		}
	})
}

// ShowTyping 显示等待提示
func (p *Pane) ShowTyping() {
	p.write(func(w io.Writer, _ int) {
		io.WriteString(w, "nest › …")
		p.term.typing = true
	})
}

// RemoveTyping 移除等待提示
func (p *Pane) RemoveTyping() {
	t := p.term
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != p {
		return
	}
	t.dropTypingLine()
}

// Notice 在当前视图输出提示
func (p *Pane) Notice(text string) {
	p.write(func(w io.Writer, _ int) {
		fmt.Fprintf(w, "  %s\n", text)
	})
}

// --- 分析视图 ---

// RenderAnalytics 渲染统计、趋势、分布和结论
func (p *Pane) RenderAnalytics(summary analytics.Summary, trend []analytics.Point) {
	p.write(func(w io.Writer, width int) {
		fmt.Fprintf(w, "  Total Chats  %d\n", summary.TotalCount)
		fmt.Fprintf(w, "  Avg Mood     %s\n\n", summary.AverageText())

		if !summary.HasData() {
			fmt.Fprintf(w, "  %s\n", summary.InsightMessage())
			return
		}

		barWidth := max(minBarWidth, (width-24)/2)
		fmt.Fprintln(w, "  Mood Trend")
		for _, pt := range trend {
			fmt.Fprintf(w, "  %-12s %s %+.2f\n", pt.Label, scoreBar(pt.Score, barWidth), pt.Score)
		}

		fmt.Fprintln(w, "\n  Distribution")
		for _, b := range summary.Distribution() {
			fmt.Fprintf(w, "  %-9s %s %d\n", titleOf(b.Category), countBar(b.Count, summary.TotalCount, barWidth*2), b.Count)
		}

		fmt.Fprintf(w, "\n  %s\n", summary.InsightMessage())
	})
}

// --- 系统视图 ---

// RenderSystem 渲染系统状态；status 为 nil 表示获取失败
func (p *Pane) RenderSystem(status *model.SystemStatus) {
	p.write(func(w io.Writer, _ int) {
		if status == nil {
			fmt.Fprintln(w, "  System status unavailable.")
			return
		}
		fmt.Fprintf(w, "  Status    %s\n", status.Status)
		fmt.Fprintf(w, "  Platform  %s\n", status.Platform)
		fmt.Fprintf(w, "  CPU       %.1f%%\n", status.CPUPercent)
		fmt.Fprintf(w, "  Memory    %.1f%%\n", status.MemoryPercent)
		if status.Uptime != "" {
			fmt.Fprintf(w, "  Uptime    %s\n", status.Uptime)
		}
	})
}

func titleOf(c analytics.Category) string {
	return cases.Title(language.English).String(string(c))
}

// scoreBar 以中线为 0 绘制 [-1, 1] 区间的分数
func scoreBar(score float64, width int) string {
	half := width / 2
	clamped := math.Max(-1, math.Min(1, score))
	n := int(math.Round(math.Abs(clamped) * float64(half)))
	left := strings.Repeat(" ", half)
	right := strings.Repeat(" ", half)
	if clamped < 0 {
		left = strings.Repeat(" ", half-n) + strings.Repeat("▒", n)
	} else {
		right = strings.Repeat("█", n) + strings.Repeat(" ", half-n)
	}
	return left + "│" + right
}

func countBar(count, total, width int) string {
	if total <= 0 || count <= 0 {
		return "·"
	}
	n := int(math.Round(float64(count) / float64(total) * float64(width)))
	return strings.Repeat("█", max(n, 1))
}

// wrap 按宽度折行，保留原有换行
func wrap(text string, width int) []string {
	if width < 20 {
		width = 20
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len([]rune(line))+1+len([]rune(word)) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
