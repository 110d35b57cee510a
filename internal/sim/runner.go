package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/balloonsim/internal/balloon"
)

// Runner owns a balloon state for the duration of a run. Not safe for
// concurrent use.
type Runner struct {
	state     *balloon.State
	metrics   []Metric
	observers []Observer
}

func New(state *balloon.State) *Runner {
	return &Runner{state: state}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// State exposes the driven state for frontends that read between steps.
func (r *Runner) State() *balloon.State { return r.state }

// Run advances the simulation for cfg.Duration in fixed cfg.Dt steps,
// firing the scheduled rupture click once its time passes. A zero
// RupturePoint means the balloon's center.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// Round, don't truncate: 1.0/0.1 sits just below 10 in floats.
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	clickPoint := cfg.RupturePoint
	if clickPoint == (balloon.Vec2{}) {
		clickPoint = r.state.Params.Center
	}
	clicked := cfg.RuptureAt < 0

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			result.FinalPhase = r.state.Phase
			return result, ctx.Err()
		default:
		}

		if !clicked && t >= cfg.RuptureAt {
			r.state.HandleClick(clickPoint)
			clicked = true
		}

		for _, m := range r.metrics {
			m.Observe(r.state, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.state, t)
		}

		r.state.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !r.state.Valid() {
			result.Errors = append(result.Errors,
				fmt.Errorf("step %d (t=%.4f): state diverged (NaN/Inf)", i, t))
			break
		}

		if cfg.FrameEvery > 0 && i%cfg.FrameEvery == 0 {
			result.Times = append(result.Times, t)
			result.Frames = append(result.Frames, snapshot(r.state))
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.FinalPhase = r.state.Phase
	return result, nil
}

// RunWithCallback steps until the duration elapses or the callback returns
// false. Frontends use it to interleave drawing with stepping.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(s *balloon.State, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(r.state, t) {
			return nil
		}
		r.state.Step(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !r.state.Valid() {
			return fmt.Errorf("state diverged at t=%.4f", t)
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func snapshot(s *balloon.State) []balloon.Vec2 {
	frame := make([]balloon.Vec2, 0, len(s.Particles))
	for p := range s.Positions() {
		frame = append(frame, p)
	}
	return frame
}
