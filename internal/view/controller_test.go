package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanMarksExactlyOneActive(t *testing.T) {
	for _, v := range All {
		plan := Plan(State{Active: v})

		require.Len(t, plan.Nav, 3)
		active := 0
		for _, item := range plan.Nav {
			if item.Active {
				active++
				assert.Equal(t, v, item.View)
			}
		}
		assert.Equal(t, 1, active)
	}
}

func TestPlanLoads(t *testing.T) {
	chat := Plan(State{Active: Chat})
	assert.True(t, chat.LoadHistory)
	assert.True(t, chat.AgentActions)
	assert.False(t, chat.LoadAnalytics)

	analytics := Plan(State{Active: Analytics})
	assert.True(t, analytics.LoadAnalytics)
	assert.False(t, analytics.LoadHistory)

	system := Plan(State{Active: System})
	assert.True(t, system.LoadSystem)
	assert.False(t, system.AgentActions)
}

func TestNavigateCancelsPreviousScope(t *testing.T) {
	var scopes []context.Context
	var plans []RenderPlan
	c := NewController(context.Background(), func(ctx context.Context, plan RenderPlan) {
		scopes = append(scopes, ctx)
		plans = append(plans, plan)
	})

	require.NoError(t, c.Navigate(Chat))
	require.NoError(t, c.Navigate(Analytics))

	require.Len(t, scopes, 2)
	assert.Error(t, scopes[0].Err())
	assert.NoError(t, scopes[1].Err())
	assert.Equal(t, Analytics, c.State().Active)
	assert.Equal(t, Analytics, plans[1].View)
	assert.Equal(t, scopes[1], c.Context())
}

func TestNavigateToActiveViewRerenders(t *testing.T) {
	renders := 0
	c := NewController(context.Background(), func(context.Context, RenderPlan) { renders++ })

	require.NoError(t, c.Navigate(System))
	require.NoError(t, c.Navigate(System))

	assert.Equal(t, 2, renders)
}

func TestNavigateUnknownView(t *testing.T) {
	renders := 0
	c := NewController(context.Background(), func(context.Context, RenderPlan) { renders++ })

	err := c.Navigate(View("settings"))

	assert.ErrorIs(t, err, ErrUnknownView)
	assert.Zero(t, renders)
}

func TestCloseCancelsActiveScope(t *testing.T) {
	c := NewController(context.Background(), func(context.Context, RenderPlan) {})
	require.NoError(t, c.Navigate(Chat))

	c.Close()

	assert.Error(t, c.Context().Err())
}

func TestParseView(t *testing.T) {
	v, err := ParseView(" Analytics ")
	require.NoError(t, err)
	assert.Equal(t, Analytics, v)

	_, err = ParseView("home")
	assert.ErrorIs(t, err, ErrUnknownView)
}
