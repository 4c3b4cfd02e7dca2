// Package minigames provides the skill-check contract between the round
// engine and the three job minigames, plus a registry mapping each job to
// its minigame factory. Minigames register themselves in init()
// functions, so the platform can instantiate them without hardcoded
// dependencies.
package minigames

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
)

// Minigame is a self-contained, deterministic skill check. The platform
// drives it tick by tick; once State().Done turns true it must report
// exactly one Outcome, which the platform forwards to the engine.
// Minigames contain pure logic with no external dependencies (especially
// no Bubble Tea).
type Minigame interface {
	// ID returns a unique identifier (e.g. "flux").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Job returns the crew job this minigame is bound to.
	Job() engine.Job

	// Reset initializes or resets the run. The RuntimeConfig provides
	// screen dimensions, the RNG seed, and the round's tuning inputs.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The buffer is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the running score and whether the run has finished.
	State() core.GameState

	// Outcome classifies the finished run. Only meaningful once
	// State().Done is true.
	Outcome() (engine.Tier, float64)
}

// Factory creates a new instance of a minigame.
type Factory func() Minigame

// Info describes a registered minigame.
type Info struct {
	ID    string
	Title string
	Job   engine.Job
}

var (
	factories = make(map[engine.Job]Factory)
	infos     = make(map[engine.Job]Info)
	mu        sync.RWMutex
)

// Register binds a minigame factory to a job. Typically called from a
// minigame's init() function. Panics on a duplicate job binding, since
// the job->minigame mapping is 1:1 by construction.
func Register(job engine.Job, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[job]; exists {
		panic(fmt.Sprintf("minigames: job %q already registered", job))
	}
	factories[job] = f

	g := f()
	infos[job] = Info{ID: g.ID(), Title: g.Title(), Job: job}
}

// ForJob instantiates the minigame bound to the given job.
func ForJob(job engine.Job) (Minigame, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[job]
	if !ok {
		return nil, fmt.Errorf("minigames: no minigame for job %q", job)
	}
	return f(), nil
}

// List returns information about all registered minigames, sorted by job.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Job < result[j].Job
	})
	return result
}

// Tier classification cutoffs shared by the stock minigames.
const (
	successCutoff = 0.75
	partialCutoff = 0.35
)

// TierFor maps a continuous score onto the three-way outcome tier.
func TierFor(score01 float64) engine.Tier {
	switch {
	case score01 >= successCutoff:
		return engine.TierSuccess
	case score01 >= partialCutoff:
		return engine.TierPartial
	default:
		return engine.TierFail
	}
}
