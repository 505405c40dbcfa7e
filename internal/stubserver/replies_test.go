package stubserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func firstPick(int) int { return 0 }

func TestChatCrisis(t *testing.T) {
	r := &Replier{pick: firstPick, now: time.Now}

	assert.Equal(t, CrisisReply, r.Chat("I want to end it all"))
	assert.Equal(t, fallbackReplies[0], r.Chat("long day at work"))
}

func TestPlanByHour(t *testing.T) {
	tests := []struct {
		hour   int
		period string
	}{
		{5, "Morning"},
		{11, "Morning"},
		{12, "Afternoon"},
		{17, "Afternoon"},
		{18, "Evening"},
		{2, "Evening"},
	}

	for _, tt := range tests {
		r := &Replier{
			pick: firstPick,
			now:  func() time.Time { return time.Date(2025, 3, 1, tt.hour, 0, 0, 0, time.Local) },
		}
		assert.Contains(t, r.Plan(), "**"+tt.period+" Plan for You**", "hour %d", tt.hour)
	}
}

func TestStrategyByMood(t *testing.T) {
	r := &Replier{pick: firstPick, now: time.Now}

	assert.Contains(t, r.Strategy("so anxious"), "Coping Strategy (Anxiety)")
	assert.Contains(t, r.Strategy("sad"), "Gentle Movement")
	assert.Contains(t, r.Strategy("stress"), "Time Blocking")
	assert.Contains(t, r.Strategy("meh"), "Coping Strategy (General)")
}
