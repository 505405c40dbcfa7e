package analytics

import (
	"golang.org/x/text/language"

	"moodnest-cli/internal/model"
)

// Point 趋势图上的一个点
type Point struct {
	Label string
	Score float64
}

// 各地区的短日期格式
var dateLayouts = map[language.Tag]string{
	language.AmericanEnglish:   "1/2/2006",
	language.BritishEnglish:    "02/01/2006",
	language.German:            "2.1.2006",
	language.French:            "02/01/2006",
	language.Spanish:           "2/1/2006",
	language.Japanese:          "2006/1/2",
	language.SimplifiedChinese: "2006/1/2",
	language.Korean:            "2006. 1. 2.",
}

var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish, // 第一个为默认
		language.BritishEnglish,
		language.German,
		language.French,
		language.Spanish,
		language.Japanese,
		language.SimplifiedChinese,
		language.Korean,
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// DateLayout 返回与 locale 最匹配的短日期格式，无法识别时用美式格式
func DateLayout(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return dateLayouts[language.AmericanEnglish]
	}
	_, idx, _ := localeMatcher.Match(tag)
	return dateLayouts[supportedLocales[idx]]
}

// Trend 生成趋势图数据，保持输入顺序，不排序
func Trend(records []model.MoodRecord, locale string) []Point {
	layout := DateLayout(locale)
	points := make([]Point, 0, len(records))
	for _, r := range records {
		points = append(points, Point{
			Label: r.Timestamp.Local().Format(layout),
			Score: r.Score,
		})
	}
	return points
}
