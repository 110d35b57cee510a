// Package audio synthesizes the rupture "pop": a short filtered noise
// burst on a portaudio output stream. Everything degrades to silence on
// device errors; the simulation never depends on audio.
package audio

import (
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 44100
	bufferSize = 512
	burstLen   = sampleRate / 8
)

type Pop struct {
	stream *portaudio.Stream

	mu        sync.Mutex
	remaining int

	filterState [2]float64
	rng         *rand.Rand
}

// NewPop opens the default output device. Callers should treat an error as
// "no sound" and carry on.
func NewPop() (*Pop, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	p := &Pop{rng: rand.New(rand.NewSource(1))}

	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, bufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	p.stream = stream
	return p, nil
}

// Trigger restarts the burst envelope. Safe to call from the frame loop.
func (p *Pop) Trigger() {
	p.mu.Lock()
	p.remaining = burstLen
	p.mu.Unlock()
}

func (p *Pop) Close() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
	}
	portaudio.Terminate()
}

// One-pole low pass, same shape the envelope decays with.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (p *Pop) process(in []float32, out [][]float32) {
	p.mu.Lock()
	remaining := p.remaining
	p.mu.Unlock()

	dt := 1.0 / float64(sampleRate)
	for i := range out[0] {
		if remaining <= 0 {
			out[0][i] = 0
			out[1][i] = 0
			continue
		}
		env := float64(remaining) / float64(burstLen)
		// Noise through a closing filter: bright attack, dull tail.
		noise := p.rng.Float64()*2 - 1
		cutoff := 400 + 4000*env
		var l, r float64
		l, p.filterState[0] = lpf(noise*env, cutoff, dt, p.filterState[0])
		r, p.filterState[1] = lpf(noise*env, cutoff, dt, p.filterState[1])
		out[0][i] = float32(l * 0.8)
		out[1][i] = float32(r * 0.8)
		remaining--
	}

	p.mu.Lock()
	p.remaining = remaining
	p.mu.Unlock()
}
