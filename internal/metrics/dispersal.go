package metrics

import (
	"math"

	"github.com/san-kum/balloonsim/internal/balloon"
)

// Dispersal reports the peak RMS particle distance from the centroid,
// relative to the first observation. Values well above 1 mean the shell
// flew apart.
type Dispersal struct {
	initial float64
	peak    float64
	samples int
}

func NewDispersal() *Dispersal { return &Dispersal{} }

func (d *Dispersal) Name() string { return "dispersal" }

func (d *Dispersal) Observe(s *balloon.State, t float64) {
	rms := rmsSpread(s)
	if d.samples == 0 {
		d.initial = rms
	}
	d.samples++
	if rms > d.peak {
		d.peak = rms
	}
}

func (d *Dispersal) Value() float64 {
	if d.initial == 0 {
		return 0
	}
	return d.peak / d.initial
}

func (d *Dispersal) Reset() {
	d.initial = 0
	d.peak = 0
	d.samples = 0
}

func rmsSpread(s *balloon.State) float64 {
	if len(s.Particles) == 0 {
		return 0
	}
	var centroid balloon.Vec2
	for i := range s.Particles {
		centroid = centroid.Add(s.Particles[i].Pos)
	}
	centroid = centroid.Scale(1 / float64(len(s.Particles)))

	sum := 0.0
	for i := range s.Particles {
		d := s.Particles[i].Pos.Dist(centroid)
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(s.Particles)))
}

// PeakSpeed records the fastest particle speed seen during a run.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(s *balloon.State, t float64) {
	for i := range s.Particles {
		if v := s.Particles[i].Vel.Len(); v > p.peak {
			p.peak = v
		}
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
