// Package flux implements the flux technician's skill check: tap-in-zone
// spike stabilization. A marker sweeps across the flux bar; each incoming
// spike must be caught by tapping while the marker sits inside the safe
// zone. Reactor energy narrows the zone and speeds the marker up.
package flux

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/minigames"
)

const (
	totalSpikes = 5
	windowTicks = 120 // ticks a spike stays catchable
	gapTicks    = 30  // pause between spikes
	baseSpeed   = 0.010
	baseZone    = 0.10
)

// Game implements the flux spike minigame.
type Game struct {
	rng  *rand.Rand
	tick uint64

	markerPos float64 // [0,1]
	markerVel float64

	zoneCenter float64
	zoneHalf   float64

	spikeIndex  int // 0-based, current or next spike
	spikeActive bool
	spikeTicks  int // ticks the current spike has been active
	gapLeft     int

	stabilized int
	done       bool

	screenW int
	screenH int
}

// New creates a flux minigame.
func New() *Game {
	return &Game{}
}

func init() {
	minigames.Register(engine.JobFlux, func() minigames.Minigame {
		return New()
	})
}

// ID returns the minigame identifier.
func (g *Game) ID() string { return "flux" }

// Title returns the display name.
func (g *Game) Title() string { return "Flux Spikes" }

// Job returns the bound crew job.
func (g *Game) Job() engine.Job { return engine.JobFlux }

// Reset initializes the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.markerPos = 0
	g.markerVel = baseSpeed * (1 + cfg.Energy01)
	g.zoneHalf = baseZone * (1 - 0.5*cfg.Energy01)
	g.spikeIndex = 0
	g.spikeActive = false
	g.spikeTicks = 0
	g.gapLeft = gapTicks
	g.stabilized = 0
	g.done = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.done {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	// Sweep the marker, bouncing at the bar ends.
	g.markerPos += g.markerVel
	if g.markerPos >= 1 {
		g.markerPos = 1
		g.markerVel = -g.markerVel
	} else if g.markerPos <= 0 {
		g.markerPos = 0
		g.markerVel = -g.markerVel
	}

	if !g.spikeActive {
		g.gapLeft--
		if g.gapLeft <= 0 {
			g.nextSpike()
		}
		return core.StepResult{State: g.State()}
	}

	// A tap is decisive: inside the zone stabilizes the spike, outside
	// vents it to ground and the spike is lost.
	if in.Has(core.ActionTap) {
		if g.markerPos >= g.zoneCenter-g.zoneHalf && g.markerPos <= g.zoneCenter+g.zoneHalf {
			g.stabilized++
		}
		g.endSpike()
		return core.StepResult{State: g.State()}
	}

	g.spikeTicks++
	if g.spikeTicks >= windowTicks {
		g.endSpike() // expired, missed
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) nextSpike() {
	g.spikeActive = true
	g.spikeTicks = 0
	// Keep the zone fully on the bar.
	g.zoneCenter = g.zoneHalf + g.rng.Float64()*(1-2*g.zoneHalf)
}

func (g *Game) endSpike() {
	g.spikeActive = false
	g.spikeIndex++
	g.gapLeft = gapTicks
	if g.spikeIndex >= totalSpikes {
		g.done = true
	}
}

// State returns the running score and completion flag.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score01: float64(g.stabilized) / totalSpikes,
		Done:    g.done,
	}
}

// Outcome classifies the finished run.
func (g *Game) Outcome() (engine.Tier, float64) {
	score := float64(g.stabilized) / totalSpikes
	return minigames.TierFor(score), score
}

// Render draws the flux bar, the safe zone and the marker.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w := dst.Width()
	barW := w - 8
	if barW < 10 {
		barW = 10
	}
	barX := (w - barW) / 2
	barY := dst.Height() / 2

	dst.DrawTextCentered(1, "FLUX SPIKES")
	dst.DrawTextCentered(2, fmt.Sprintf("spike %d/%d  stabilized %d",
		min(g.spikeIndex+1, totalSpikes), totalSpikes, g.stabilized))

	dst.DrawHLine(barX, barY, barW, '─')
	if g.spikeActive {
		zx := barX + int((g.zoneCenter-g.zoneHalf)*float64(barW))
		zw := int(2 * g.zoneHalf * float64(barW))
		if zw < 1 {
			zw = 1
		}
		dst.DrawHLine(zx, barY, zw, '=')
	}
	dst.Set(barX+int(g.markerPos*float64(barW-1)), barY, '█')

	if g.spikeActive {
		dst.DrawTextCentered(barY+2, "SPIKE INCOMING - tap inside the zone!")
	} else if !g.done {
		dst.DrawTextCentered(barY+2, "hold steady...")
	}
	if g.done {
		dst.DrawTextCentered(barY+2, "stabilization complete")
	}
}
