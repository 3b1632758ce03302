package advice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/advice"
)

func TestMockPlanner_KnownActivities(t *testing.T) {
	p := advice.NewMockPlanner(0)

	for _, activity := range []string{"hiking", "cycling", "camping"} {
		t.Run(activity, func(t *testing.T) {
			plan, err := p.GenerateRainPlan(context.Background(), "Cuifeng Lake", activity)

			require.NoError(t, err)
			assert.Contains(t, plan, "Cuifeng Lake")
			assert.Contains(t, plan, activity)
		})
	}
}

func TestMockPlanner_UnknownActivityFallsBackToHiking(t *testing.T) {
	p := advice.NewMockPlanner(0)

	got, err := p.GenerateRainPlan(context.Background(), "Yilan", "kayaking")
	require.NoError(t, err)
	want, err := p.GenerateRainPlan(context.Background(), "Yilan", "hiking")
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestMockPlanner_Delay(t *testing.T) {
	p := advice.NewMockPlanner(20 * time.Millisecond)

	start := time.Now()
	_, err := p.GenerateRainPlan(context.Background(), "Yilan", "hiking")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMockPlanner_ContextCancelled(t *testing.T) {
	p := advice.NewMockPlanner(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GenerateRainPlan(ctx, "Yilan", "hiking")

	assert.ErrorIs(t, err, context.Canceled)
}
