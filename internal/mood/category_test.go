package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodnest-cli/internal/model"
)

func TestCategorize(t *testing.T) {
	cases := map[string]Category{
		"I'm so anxious about tomorrow": Anxiety,
		"feeling DOWN today":            Sadness,
		"work has me overwhelmed":       Stress,
		"just checking in":              General,
		"":                              General,
	}
	for text, want := range cases {
		assert.Equal(t, want, Categorize(text), text)
	}
}

func TestCategorizePrefersEarlierBucket(t *testing.T) {
	assert.Equal(t, Anxiety, Categorize("I panic when I'm tired"))
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Anxiety", Anxiety.Title())
	assert.Equal(t, "General", General.Title())
}

func TestInfer(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "I feel so sad"},
		{Role: model.RoleModel, Content: "I'm here for you. Are you stressed?"},
	}
	assert.Equal(t, "sad", Infer(history, "stress"))

	history = append(history, model.Message{Role: model.RoleUser, Content: "thanks"})
	assert.Equal(t, "stress", Infer(history, "stress"))

	assert.Equal(t, "general", Infer(nil, "general"))
}
