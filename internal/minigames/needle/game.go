// Package needle implements the helm balancer's skill check: an inertial
// needle that must be held inside the balance band. Drift pushes the
// needle around; left/right impulses fight it. The needle keeps its
// momentum, so over-correcting hurts. Reactor energy strengthens the
// drift and narrows the band.
package needle

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/minigames"
)

const (
	durationTicks = 600
	driftEvery    = 40 // ticks between drift changes
	baseDrift     = 0.0012
	baseBand      = 0.35
	impulse       = 0.02
	damping       = 0.995
)

// Game implements the needle balance minigame.
type Game struct {
	rng  *rand.Rand
	tick int

	pos      float64 // [-1,1]
	vel      float64
	drift    float64
	maxDrift float64
	bandHalf float64

	inBand int
	done   bool
}

// New creates a needle minigame.
func New() *Game {
	return &Game{}
}

func init() {
	minigames.Register(engine.JobHelm, func() minigames.Minigame {
		return New()
	})
}

// ID returns the minigame identifier.
func (g *Game) ID() string { return "needle" }

// Title returns the display name.
func (g *Game) Title() string { return "Balance Needle" }

// Job returns the bound crew job.
func (g *Game) Job() engine.Job { return engine.JobHelm }

// Reset initializes the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.pos = 0
	g.vel = 0
	g.bandHalf = baseBand * (1 - 0.4*cfg.Energy01)
	g.maxDrift = baseDrift * (1 + 1.5*cfg.Energy01)
	g.drift = (g.rng.Float64()*2 - 1) * g.maxDrift
	g.inBand = 0
	g.done = false
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.done {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if g.tick%driftEvery == 0 {
		g.drift = (g.rng.Float64()*2 - 1) * g.maxDrift
	}

	if in.Has(core.ActionLeft) {
		g.vel -= impulse
	}
	if in.Has(core.ActionRight) {
		g.vel += impulse
	}

	g.vel = (g.vel + g.drift) * damping
	g.pos += g.vel

	// The stops absorb most of the momentum.
	if g.pos > 1 {
		g.pos = 1
		g.vel = -g.vel * 0.5
	} else if g.pos < -1 {
		g.pos = -1
		g.vel = -g.vel * 0.5
	}

	if g.pos >= -g.bandHalf && g.pos <= g.bandHalf {
		g.inBand++
	}

	if g.tick >= durationTicks {
		g.done = true
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) score() float64 {
	if g.tick == 0 {
		return 0
	}
	return float64(g.inBand) / durationTicks
}

// State returns the running score and completion flag.
func (g *Game) State() core.GameState {
	return core.GameState{Score01: g.score(), Done: g.done}
}

// Outcome classifies the finished run.
func (g *Game) Outcome() (engine.Tier, float64) {
	score := g.score()
	return minigames.TierFor(score), score
}

// Render draws the gauge, the balance band and the needle.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w := dst.Width()
	gaugeW := w - 10
	if gaugeW < 12 {
		gaugeW = 12
	}
	gx := (w - gaugeW) / 2
	gy := dst.Height() / 2

	dst.DrawTextCentered(1, "BALANCE NEEDLE")
	dst.DrawTextCentered(2, fmt.Sprintf("in band %d%%  time %d",
		int(g.score()*100), (durationTicks-g.tick)/60))

	dst.DrawHLine(gx, gy, gaugeW, '─')
	bandX := gx + int((1-g.bandHalf)/2*float64(gaugeW))
	bandW := int(g.bandHalf * float64(gaugeW))
	if bandW < 1 {
		bandW = 1
	}
	dst.DrawHLine(bandX, gy, bandW, '=')
	dst.Set(gx+gaugeW/2, gy-1, '┬') // center mark

	needleX := gx + int((g.pos+1)/2*float64(gaugeW-1))
	dst.Set(needleX, gy, '█')

	if g.done {
		dst.DrawTextCentered(gy+2, "helm balanced")
	} else {
		dst.DrawTextCentered(gy+2, "a/d to counter the drift")
	}
}
