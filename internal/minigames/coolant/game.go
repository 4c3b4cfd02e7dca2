// Package coolant implements the coolant operator's skill check:
// tap-to-shrink leaks. Leaks spring open along the coolant line and grow
// every tick; move the clamp between them and tap to squeeze each one
// shut before the timer runs out. Reactor energy raises the spawn rate
// and growth speed.
package coolant

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/minigames"
)

const (
	slots         = 5
	durationTicks = 600
	maxLeakSize   = 3.0
	patchPower    = 0.5
	baseGrowth    = 0.002
	baseSpawnGap  = 90
)

// Game implements the coolant leak minigame.
type Game struct {
	rng  *rand.Rand
	tick int

	leaks      [slots]float64 // 0 = no leak at this slot
	cursor     int
	spawnEvery int
	spawnIn    int
	growth     float64

	spawned int
	sealed  int
	done    bool
}

// New creates a coolant minigame.
func New() *Game {
	return &Game{}
}

func init() {
	minigames.Register(engine.JobCoolant, func() minigames.Minigame {
		return New()
	})
}

// ID returns the minigame identifier.
func (g *Game) ID() string { return "coolant" }

// Title returns the display name.
func (g *Game) Title() string { return "Coolant Leaks" }

// Job returns the bound crew job.
func (g *Game) Job() engine.Job { return engine.JobCoolant }

// Reset initializes the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.leaks = [slots]float64{}
	g.cursor = slots / 2
	g.spawnEvery = baseSpawnGap - int(30*cfg.Energy01)
	g.spawnIn = 1 // first leak opens immediately
	g.growth = baseGrowth * (1 + cfg.Energy01)
	g.spawned = 0
	g.sealed = 0
	g.done = false
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.done {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	switch {
	case in.Has(core.ActionLeft) && g.cursor > 0:
		g.cursor--
	case in.Has(core.ActionRight) && g.cursor < slots-1:
		g.cursor++
	}

	if in.Has(core.ActionTap) && g.leaks[g.cursor] > 0 {
		g.leaks[g.cursor] -= patchPower
		if g.leaks[g.cursor] <= 0 {
			g.leaks[g.cursor] = 0
			g.sealed++
		}
	}

	// Open leaks grow; fully blown leaks just sit at max size.
	for i := range g.leaks {
		if g.leaks[i] > 0 {
			g.leaks[i] += g.growth
			if g.leaks[i] > maxLeakSize {
				g.leaks[i] = maxLeakSize
			}
		}
	}

	g.spawnIn--
	if g.spawnIn <= 0 {
		g.spawnLeak()
		g.spawnIn = g.spawnEvery
	}

	if g.tick >= durationTicks {
		g.done = true
	}
	return core.StepResult{State: g.State()}
}

// spawnLeak opens a new leak at a random dry slot, if any remain.
func (g *Game) spawnLeak() {
	var free []int
	for i, size := range g.leaks {
		if size == 0 {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return
	}
	g.leaks[free[g.rng.Intn(len(free))]] = 1.0
	g.spawned++
}

func (g *Game) score() float64 {
	if g.spawned == 0 {
		return 1
	}
	return float64(g.sealed) / float64(g.spawned)
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

// Render draws the coolant line, its leaks and the clamp cursor.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w := dst.Width()
	midY := dst.Height() / 2
	slotGap := w / (slots + 1)

	dst.DrawTextCentered(1, "COOLANT LEAKS")
	dst.DrawTextCentered(2, fmt.Sprintf("sealed %d/%d  time %d",
		g.sealed, g.spawned, (durationTicks-g.tick)/60))

	dst.DrawHLine(2, midY, w-4, '═')
	for i, size := range g.leaks {
		x := slotGap * (i + 1)
		switch {
		case size == 0:
			dst.Set(x, midY, '═')
		case size < 1.5:
			dst.Set(x, midY, '~')
		default:
			dst.Set(x, midY, '≈')
			dst.Set(x, midY-1, '!')
		}
		if i == g.cursor {
			dst.Set(x, midY+1, '^')
		}
	}

	if g.done {
		dst.DrawTextCentered(midY+3, "line secured")
	} else {
		dst.DrawTextCentered(midY+3, "a/d move clamp, space to squeeze")
	}
}
