// Package analytics 将情绪打分序列折叠为统计摘要、三档分布与结论
package analytics

import (
	"fmt"

	"moodnest-cli/internal/model"
)

// 正负情绪阈值（开区间，恰好等于阈值归为中性）
const (
	PositiveThreshold = 0.3
	NegativeThreshold = -0.3
)

// Category 分类结果，同时用于单条记录和整体结论
type Category string

const (
	Positive Category = "positive"
	Neutral  Category = "neutral"
	Negative Category = "negative"
	Empty    Category = "empty" // 没有任何记录
)

// 结论文案
var insightMessages = map[Category]string{
	Positive: "Your mood has been generally positive. Keep up the good work!",
	Negative: "It seems you've been having a tough time. Remember to use the Coping Strategies.",
	Neutral:  "Your mood has been balanced. Consistency is key!",
	Empty:    "No data available yet. Start chatting!",
}

// LoadFailedMessage 拉取分析数据失败时显示的文案
const LoadFailedMessage = "Failed to load analytics data."

// Summary 一次渲染的统计结果，每次重新计算，不缓存
type Summary struct {
	TotalCount    int
	AverageScore  float64 // TotalCount 为 0 时无意义
	PositiveCount int
	NeutralCount  int
	NegativeCount int
	Insight       Category
}

// Classify 按阈值给单个分数分类
func Classify(score float64) Category {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Summarize 计算统计摘要；records 需由调用方按时间排好序
func Summarize(records []model.MoodRecord) Summary {
	if len(records) == 0 {
		return Summary{Insight: Empty}
	}

	var sum float64
	s := Summary{TotalCount: len(records)}
	for _, r := range records {
		sum += r.Score
		switch Classify(r.Score) {
		case Positive:
			s.PositiveCount++
		case Negative:
			s.NegativeCount++
		}
	}
	// 中性数量由差值得出，保证三档之和等于总数
	s.NeutralCount = s.TotalCount - s.PositiveCount - s.NegativeCount
	s.AverageScore = sum / float64(s.TotalCount)
	s.Insight = Classify(s.AverageScore)
	return s
}

// HasData 是否有记录
func (s Summary) HasData() bool {
	return s.Insight != Empty && s.TotalCount > 0
}

// AverageText 平均分的展示文本，无数据时为 N/A
func (s Summary) AverageText() string {
	if !s.HasData() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", s.AverageScore)
}

// InsightMessage 结论文案
func (s Summary) InsightMessage() string {
	return InsightMessage(s.Insight)
}

// InsightMessage 分类对应的结论文案
func InsightMessage(c Category) string {
	if msg, ok := insightMessages[c]; ok {
		return msg
	}
	return insightMessages[Empty]
}

// Bucket 分布图中的一档
type Bucket struct {
	Category Category
	Count    int
}

// Distribution 按 正/中/负 顺序返回分布
func (s Summary) Distribution() []Bucket {
	return []Bucket{
		{Category: Positive, Count: s.PositiveCount},
		{Category: Neutral, Count: s.NeutralCount},
		{Category: Negative, Count: s.NegativeCount},
	}
}
