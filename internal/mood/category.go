// Package mood 将情绪描述归类为应对策略的类别
package mood

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"moodnest-cli/internal/model"
)

// Category 应对策略类别
type Category string

const (
	Anxiety Category = "anxiety"
	Sadness Category = "sadness"
	Stress  Category = "stress"
	General Category = "general"
)

// 按顺序匹配，先命中者优先
var keywordBuckets = []struct {
	category Category
	keywords []string
}{
	{Anxiety, []string{"anxious", "worry", "panic", "scared"}},
	{Sadness, []string{"sad", "depressed", "down", "cry"}},
	{Stress, []string{"stress", "overwhelmed", "busy", "tired"}},
}

// Categorize 根据关键字判断类别，未命中返回 General
func Categorize(text string) Category {
	normalized := strings.ToLower(text)
	for _, bucket := range keywordBuckets {
		for _, word := range bucket.keywords {
			if strings.Contains(normalized, word) {
				return bucket.category
			}
		}
	}
	return General
}

// Title 用于展示的类别名称，例如 "Anxiety"
func (c Category) Title() string {
	// Caser 有状态，不能跨 goroutine 共享
	return cases.Title(language.English).String(string(c))
}

// Infer 从最近的一条用户消息推断情绪关键字，无法判断时返回 fallback
func Infer(history []model.Message, fallback string) string {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].IsUser() {
			continue
		}
		if c := Categorize(history[i].Content); c != General {
			return keywordFor(c)
		}
		break
	}
	return fallback
}

// keywordFor 返回后端能识别的代表性情绪词
func keywordFor(c Category) string {
	for _, bucket := range keywordBuckets {
		if bucket.category == c {
			return bucket.keywords[0]
		}
	}
	return string(General)
}
