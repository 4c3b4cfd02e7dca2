package engine

import (
	"math"

	"github.com/vovakirdan/core-collapse/internal/balance"
)

// Outcome is the Maintenance classification of a finished round.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeClear    Outcome = "clear"
	OutcomeFail     Outcome = "fail"
	OutcomeOverload Outcome = "overload"
)

// MinigameResult is the immutable record of one resolved item activation.
// Results are appended in resolution order, one per activation.
type MinigameResult struct {
	PlayerID    string
	Job         Job
	ItemID      ItemID
	Tier        Tier
	Score01     float64 // continuous skill measure, informational
	DeltaTotal  float64 // applied to the reactor total when this resolved
	DeltaShip01 float64 // applied to ship health during Maintenance
}

// RoundState holds everything that belongs to a single round. A fresh
// RoundState is built for each round index; nothing in it survives into
// the next round.
type RoundState struct {
	Index            int // 1-based
	Gate             int
	CardsPlayed      map[string]int // player id -> card value; absent = not chosen
	TotalBeforeItems int
	TotalAfterItems  float64 // mutated only during Engage item resolution
	ReactorEnergy01  float64
	Outcome          Outcome // set exactly once, during Maintenance
	Results          []MinigameResult
}

// Gate returns the clear threshold for a round: a per-player base plus a
// cyclic offset. The 1-based round index maps onto the 0-based offset
// cycle, so with the default 5-entry cycle round 6 reuses offset index 0.
func Gate(roundIndex, playerCount int, cfg balance.Config) int {
	offs := cfg.GateOffsets
	if len(offs) == 0 {
		offs = balance.Default().GateOffsets
	}
	return cfg.GateBasePerPlayer*playerCount + offs[(roundIndex-1)%len(offs)]
}

// ReactorLimit returns the overload threshold, fixed for the whole game
// at creation time.
func ReactorLimit(playerCount int, cfg balance.Config) int {
	return cfg.ReactorLimitPerPlayer * playerCount
}

// newRound builds the fresh state for the given round index: new gate,
// no cards chosen, empty results, zero totals.
func newRound(index, playerCount int, cfg balance.Config) *RoundState {
	return &RoundState{
		Index:       index,
		Gate:        Gate(index, playerCount, cfg),
		CardsPlayed: make(map[string]int),
	}
}

// allSuccess reports whether every resolved result this round hit the
// success tier. Vacuously true when no items were used.
func (r *RoundState) allSuccess() bool {
	for _, res := range r.Results {
		if res.Tier != TierSuccess {
			return false
		}
	}
	return true
}

// clamp01 clamps to the inclusive [0,1] range.
func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// round2 rounds to two decimal places so item products cannot accumulate
// floating-point drift into the reactor total across a round.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// shipAdjust applies one ship-health delta: clamped to [0,1] after every
// adjustment, rounded so repeated adjustments stay drift-free.
func shipAdjust(hp, delta float64) float64 {
	return round2(clamp01(hp + delta))
}
