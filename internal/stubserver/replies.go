package stubserver

import (
	"fmt"
	"strings"
	"time"

	"moodnest-cli/internal/mood"
)

var fallbackReplies = []string{
	"I'm here for you. Tell me more about how you're feeling.",
	"It sounds like you're going through a lot. I'm listening.",
	"Take a deep breath. You are not alone in this.",
	"I understand. Sometimes things can feel overwhelming.",
	"Sending you virtual hugs. How can I support you today?",
	"Remember to be kind to yourself. You're doing your best.",
	"That sounds tough. Do you want to talk about it?",
	"I'm listening. Please go on.",
	"Your feelings are valid. I'm here.",
}

var crisisKeywords = []string{"die", "kill", "suicide", "hurt myself", "end it"}

// CrisisReply 命中危机关键字时的固定回复
const CrisisReply = `I'm very concerned about what you're saying. Please reach out for help immediately.
You are not alone.
- Suicide & Crisis Lifeline: 988 (US)
- International resources: findahelpline.com
Please talk to a professional or someone you trust right now.`

var (
	morningRoutines = []string{
		"1. Drink a glass of water.\n2. 5-minute stretching.\n3. Write down 3 things you are grateful for.",
		"1. Make your bed.\n2. 10-minute meditation.\n3. Healthy breakfast.",
		"1. Short walk outside.\n2. Review your goals for the day.\n3. Listen to uplifting music.",
	}
	afternoonRoutines = []string{
		"1. Take a short break.\n2. Hydrate.\n3. Do a quick breathing exercise.",
	}
	eveningRoutines = []string{
		"1. Digital detox (no screens) for 1 hour before bed.\n2. Read a book.\n3. Reflect on what went well today.",
		"1. Warm bath or shower.\n2. Journaling your thoughts.\n3. Prepare clothes for tomorrow.",
		"1. Relaxation exercises.\n2. Listen to calming sounds.\n3. Sleep at a consistent time.",
	}
)

var strategies = map[mood.Category][]string{
	mood.Anxiety: {
		"**Box Breathing**: Inhale for 4s, hold for 4s, exhale for 4s, hold for 4s. Repeat 4 times.",
		"**5-4-3-2-1 Grounding**: Acknowledge 5 things you see, 4 you can touch, 3 you hear, 2 you can smell, 1 you can taste.",
		"**Progressive Muscle Relaxation**: Tense and then relax each muscle group starting from your toes up to your head.",
	},
	mood.Sadness: {
		"**Gentle Movement**: Go for a short walk or do some light stretching.",
		"**Comfort**: Wrap yourself in a warm blanket and drink a warm beverage.",
		"**Expression**: Write down your feelings in a journal or draw them out.",
	},
	mood.Stress: {
		"**Time Blocking**: Focus on just one small task for 5 minutes.",
		"**Nature Break**: Step outside or look at a picture of nature.",
		"**Music**: Listen to your favorite calming playlist.",
	},
	mood.General: {
		"**Mindfulness**: Take a moment to just 'be' without doing anything.",
		"**Hydration**: Drink a glass of water.",
		"**Gratitude**: Think of one small thing that made you smile today.",
	},
}

// Replier 生成各类回复；pick 返回 [0, n) 的下标
type Replier struct {
	pick func(n int) int
	now  func() time.Time
}

// IsCrisis 判断文本是否包含危机关键字
func IsCrisis(text string) bool {
	normalized := strings.ToLower(text)
	for _, k := range crisisKeywords {
		if strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}

// Chat 对用户消息的回复
func (r *Replier) Chat(text string) string {
	if IsCrisis(text) {
		return CrisisReply
	}
	return fallbackReplies[r.pick(len(fallbackReplies))]
}

// Plan 按当前时段生成计划
func (r *Replier) Plan() string {
	hour := r.now().Hour()

	var (
		period   string
		routines []string
	)
	switch {
	case hour >= 5 && hour < 12:
		period, routines = "Morning", morningRoutines
	case hour >= 12 && hour < 18:
		period, routines = "Afternoon", afternoonRoutines
	default:
		period, routines = "Evening", eveningRoutines
	}

	return fmt.Sprintf("**%s Plan for You**\n\nBased on the time of day, here is a gentle plan:\n\n%s\n\n*Remember: Small steps make a big difference.*",
		period, routines[r.pick(len(routines))])
}

// Strategy 按情绪类别给出应对策略
func (r *Replier) Strategy(moodText string) string {
	category := mood.Categorize(moodText)
	options := strategies[category]
	return fmt.Sprintf("**Coping Strategy (%s)**\n\n%s", category.Title(), options[r.pick(len(options))])
}
