package stubserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		sign int
	}{
		{"positive", "I feel happy and grateful today", 1},
		{"negative", "Everything is terrible and I'm so tired", -1},
		{"neutral", "I went to the store", 0},
		{"negated", "I am not happy", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			switch tt.sign {
			case 1:
				assert.Greater(t, got.Score, 0.0)
			case -1:
				assert.Less(t, got.Score, 0.0)
			default:
				assert.Zero(t, got.Score)
				assert.Zero(t, got.Magnitude)
			}
			assert.GreaterOrEqual(t, got.Score, -1.0)
			assert.LessOrEqual(t, got.Score, 1.0)
		})
	}
}

func TestAnalyzeClampsScore(t *testing.T) {
	got := Analyze("terrible awful terrible!!!!!")

	assert.Equal(t, -1.0, got.Score)
	assert.Equal(t, 1.0, got.Magnitude)
}
