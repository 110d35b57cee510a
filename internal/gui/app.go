// Package gui is the raylib frontend: the balloon rendered as colored
// particles, popped by shooting it with the mouse.
package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/balloonsim/internal/audio"
	"github.com/san-kum/balloonsim/internal/balloon"
	"github.com/san-kum/balloonsim/internal/config"
)

const (
	screenW = 1000
	screenH = 700

	// pixels per world meter
	scale = 220.0
)

var (
	colBg     = rl.NewColor(12, 12, 16, 255)
	colGround = rl.NewColor(70, 70, 80, 255)
	colBullet = rl.NewColor(235, 80, 80, 255)
	colText   = rl.NewColor(150, 150, 150, 255)
)

type app struct {
	state *balloon.State
	sound *audio.Pop
}

// Run opens the window and drives the simulation until the user closes it.
// withSound enables the rupture pop; audio device errors are non-fatal.
func Run(cfg *config.Config, withSound bool) error {
	state, err := cfg.Build()
	if err != nil {
		return err
	}

	a := &app{state: state}
	if withSound {
		if pop, err := audio.NewPop(); err == nil {
			a.sound = pop
			defer a.sound.Close()
		} else {
			fmt.Printf("audio disabled: %v\n", err)
		}
	}

	rl.InitWindow(screenW, screenH, "balloonsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	paused := false
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyP) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyR) {
			if st, err := cfg.Build(); err == nil {
				a.state = st
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			// Shoot from the bottom center toward the cursor, like a
			// slingshot from below.
			target := a.toWorld(rl.GetMousePosition())
			muzzle := balloon.Vec2{X: a.state.Params.Center.X, Y: a.state.Params.GroundHeight}
			a.state.FireBullet(muzzle, target)
		}

		if !paused {
			before := a.state.Phase
			a.state.Step(float64(rl.GetFrameTime()))
			if before == balloon.PhaseIntact && a.state.Phase == balloon.PhaseRuptured && a.sound != nil {
				a.sound.Trigger()
			}
		}

		a.draw(paused)
	}
	return nil
}

func (a *app) toScreen(p balloon.Vec2) rl.Vector2 {
	c := a.state.Params.Center
	x := screenW/2 + (p.X-c.X)*scale
	y := screenH - 60 - (p.Y-a.state.Params.GroundHeight)*scale
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

func (a *app) toWorld(v rl.Vector2) balloon.Vec2 {
	c := a.state.Params.Center
	return balloon.Vec2{
		X: c.X + (float64(v.X)-screenW/2)/scale,
		Y: a.state.Params.GroundHeight + (screenH-60-float64(v.Y))/scale,
	}
}

func (a *app) draw(paused bool) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(colBg)

	groundY := int32(screenH - 60)
	rl.DrawLine(0, groundY, screenW, groundY, colGround)

	radius := float32(a.state.Params.ParticleRadius * scale)
	if radius < 2 {
		radius = 2
	}
	for i := range a.state.Particles {
		p := &a.state.Particles[i]
		rl.DrawCircleV(a.toScreen(p.Pos), radius, speedColor(p.Vel.Len()))
	}
	for _, b := range a.state.Bullets {
		rl.DrawCircleV(a.toScreen(b.Pos), float32(b.Radius*scale), colBullet)
	}

	rl.DrawText(fmt.Sprintf("%s  t=%.1fs", a.state.Phase, a.state.Time), 12, 12, 20, colText)
	rl.DrawText("click: shoot   P: pause   R: reset", 12, 38, 16, colText)
	if paused {
		rl.DrawText("paused", screenW-100, 12, 20, colBullet)
	}
}

// speedColor fades water-blue to white as particles speed up.
func speedColor(speed float64) rl.Color {
	t := math.Min(speed/6.0, 1.0)
	r := uint8(100 + 155*t)
	g := uint8(180 + 60*t)
	return rl.NewColor(r, g, 255, 230)
}
