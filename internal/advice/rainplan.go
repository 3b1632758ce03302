// Package advice provides rain-day contingency plans for an activity.
// The only implementation is a canned stand-in for a hosted model.
package advice

import (
	"context"
	"fmt"
	"time"
)

// DefaultDelay approximates the latency of the hosted model the mock replaces.
const DefaultDelay = 1500 * time.Millisecond

// RainPlanner suggests what to do when it rains at a location.
type RainPlanner interface {
	GenerateRainPlan(ctx context.Context, location, activity string) (string, error)
}

// plans holds one template per activity; %[1]s is the location.
var plans = map[string]string{
	"hiking": "[%[1]s rain plan - hiking]\n" +
		"Head back down to the lower trailhead. If the rain is heavy, shelter at the %[1]s visitor centre or ecology hall.\n\n" +
		"Indoor alternatives:\n1. Cypress wood museum\n2. Rest at the hot-spring lodge",
	"cycling": "[%[1]s rain plan - cycling]\n" +
		"Roads are slippery; pause the ride. The nearest rest stop is 2 km ahead.\n\n" +
		"Alternative:\nCall the shuttle for the bikes and wait it out at a cafe.",
	"camping": "[%[1]s rain plan - camping]\n" +
		"Drainage at the current pitch may be poor. Move to a covered pitch in zone B, " +
		"or overnight at the %[1]s car park (check local rules).",
}

// MockPlanner returns canned plans after a fixed delay.
// Unknown activities get the hiking plan.
type MockPlanner struct {
	Delay time.Duration
}

// NewMockPlanner returns a MockPlanner with the given delay.
func NewMockPlanner(delay time.Duration) *MockPlanner {
	return &MockPlanner{Delay: delay}
}

// GenerateRainPlan waits for the configured delay, then returns the plan.
// It returns ctx.Err() if the context ends first.
func (m *MockPlanner) GenerateRainPlan(ctx context.Context, location, activity string) (string, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("advice.MockPlanner.GenerateRainPlan: %w", ctx.Err())
		case <-timer.C:
		}
	}
	tpl, ok := plans[activity]
	if !ok {
		tpl = plans["hiking"]
	}
	return fmt.Sprintf(tpl, location), nil
}
