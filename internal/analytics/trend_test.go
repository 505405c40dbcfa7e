package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"moodnest-cli/internal/model"
)

func TestDateLayout(t *testing.T) {
	assert.Equal(t, "1/2/2006", DateLayout("en-US"))
	assert.Equal(t, "02/01/2006", DateLayout("en-GB"))
	assert.Equal(t, "2.1.2006", DateLayout("de-DE"))
	assert.Equal(t, "1/2/2006", DateLayout("not a locale"))
}

func TestTrendKeepsInputOrder(t *testing.T) {
	records := []model.MoodRecord{
		{Timestamp: time.Date(2025, 3, 9, 10, 0, 0, 0, time.Local), Score: 0.4},
		{Timestamp: time.Date(2025, 3, 2, 10, 0, 0, 0, time.Local), Score: -0.2},
	}

	points := Trend(records, "en-US")

	assert.Equal(t, []Point{
		{Label: "3/9/2025", Score: 0.4},
		{Label: "3/2/2025", Score: -0.2},
	}, points)
}

func TestTrendEmpty(t *testing.T) {
	assert.Empty(t, Trend(nil, "en-US"))
}
