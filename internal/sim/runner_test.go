package sim

import (
	"context"
	"testing"

	"github.com/san-kum/balloonsim/internal/balloon"
)

func newState(t *testing.T) *balloon.State {
	t.Helper()
	s, err := balloon.New(balloon.DefaultParams())
	if err != nil {
		t.Fatalf("new balloon: %v", err)
	}
	return s
}

func TestRunnerRun(t *testing.T) {
	r := New(newState(t))

	cfg := Config{Dt: 1.0 / 60.0, Duration: 1.0, FrameEvery: 1, RuptureAt: -1, ValidateState: true}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 60 {
		t.Errorf("expected 60 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 60 {
		t.Errorf("expected 60 frames, got %d", len(result.Frames))
	}
	if len(result.Times) != len(result.Frames) {
		t.Errorf("times (%d) and frames (%d) out of sync", len(result.Times), len(result.Frames))
	}
	if result.FinalPhase != balloon.PhaseIntact {
		t.Errorf("expected intact without a scheduled rupture, got %v", result.FinalPhase)
	}
}

func TestRunnerScheduledRupture(t *testing.T) {
	r := New(newState(t))

	cfg := DefaultConfig()
	cfg.Duration = 2.0
	cfg.RuptureAt = 0.5

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.FinalPhase != balloon.PhaseRuptured {
		t.Errorf("expected ruptured, got %v", result.FinalPhase)
	}
}

func TestRunnerFrameSampling(t *testing.T) {
	r := New(newState(t))

	cfg := Config{Dt: 0.01, Duration: 1.0, FrameEvery: 10, RuptureAt: -1}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Frames) != 10 {
		t.Errorf("expected 10 sampled frames, got %d", len(result.Frames))
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(newState(t))
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerContextCancel(t *testing.T) {
	r := New(newState(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Dt: 0.01, Duration: 10, RuptureAt: -1}
	_, err := r.Run(ctx, cfg)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                        { return "count" }
func (c *countingMetric) Observe(s *balloon.State, t float64) { c.count++ }
func (c *countingMetric) Value() float64                      { return float64(c.count) }
func (c *countingMetric) Reset()                              { c.count = 0 }

func TestRunnerMetrics(t *testing.T) {
	r := New(newState(t))

	m := &countingMetric{}
	r.AddMetric(m)

	cfg := Config{Dt: 0.1, Duration: 1.0, RuptureAt: -1}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got, ok := result.Metrics["count"]; !ok || got != 10 {
		t.Errorf("expected metric count 10, got %v (present=%v)", got, ok)
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	r := New(newState(t))

	steps := 0
	cfg := Config{Dt: 0.01, Duration: 10}
	err := r.RunWithCallback(context.Background(), cfg, func(s *balloon.State, t float64) bool {
		steps++
		return steps < 5
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if steps != 5 {
		t.Errorf("expected 5 callbacks, got %d", steps)
	}
}
