package stubserver

import (
	"math"
	"strings"
)

// Sentiment 文本情绪：Score 为极性 [-1, 1]，Magnitude 为主观程度 [0, 1]
type Sentiment struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

var polarityWords = map[string]float64{
	"happy":     0.8,
	"great":     0.8,
	"good":      0.7,
	"love":      0.5,
	"calm":      0.4,
	"better":    0.5,
	"grateful":  0.8,
	"excited":   0.4,
	"relaxed":   0.5,
	"thanks":    0.2,
	"fine":      0.4,
	"okay":      0.5,
	"sad":       -0.5,
	"bad":       -0.7,
	"terrible":  -1,
	"awful":     -1,
	"depressed": -0.6,
	"anxious":   -0.5,
	"worried":   -0.4,
	"scared":    -0.6,
	"stressed":  -0.5,
	"tired":     -0.4,
	"lonely":    -0.5,
	"angry":     -0.5,
	"hate":      -0.8,
	"down":      -0.2,
}

var negators = map[string]bool{
	"not":   true,
	"no":    true,
	"never": true,
	"don't": true,
	"isn't": true,
}

// Analyze 基于关键字的情绪打分；没有命中任何关键字时为 0
func Analyze(text string) Sentiment {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r == '\'')
	})

	var (
		sum  float64
		hits int
	)
	for i, w := range words {
		polarity, ok := polarityWords[w]
		if !ok {
			continue
		}
		if i > 0 && negators[words[i-1]] {
			polarity *= -0.5
		}
		sum += polarity
		hits++
	}
	if hits == 0 {
		return Sentiment{}
	}

	boost := math.Min(float64(strings.Count(text, "!")), 3) * 0.05
	score := sum / float64(hits)
	if score > 0 {
		score += boost
	} else if score < 0 {
		score -= boost
	}

	return Sentiment{
		Score:     round2(clamp(score, -1, 1)),
		Magnitude: round2(clamp(0.4+0.2*float64(hits), 0, 1)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
