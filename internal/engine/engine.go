package engine

import (
	"github.com/vovakirdan/core-collapse/internal/balance"
)

// Phase is the current state of the game state machine.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseRoleReveal
	PhasePlan
	PhaseIgnition
	PhaseEngage
	PhaseMaintenance
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseLobby:       "Lobby",
	PhaseRoleReveal:  "RoleReveal",
	PhasePlan:        "Plan",
	PhaseIgnition:    "Ignition",
	PhaseEngage:      "Engage",
	PhaseMaintenance: "Maintenance",
	PhaseGameOver:    "GameOver",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Game termination constants: a second overload loses the reactor
// outright, and the crew needs four cleared rounds to win.
const (
	overloadLimit   = 2
	crewClearsToWin = 4
)

// Activation is the descriptor of the minigame currently in flight.
// While it is non-nil the Engage phase is suspended: no other mutating
// event is processed for that seat until MinigameComplete arrives.
type Activation struct {
	PlayerID string
	ItemID   ItemID
	Job      Job
}

// Engine owns all mutable game state. All mutation goes through
// Dispatch; readers (the presentation layer, minigames) only ever see
// committed state through Snapshot. Single-threaded by design — the only
// suspension points are the local card choice and the active minigame.
type Engine struct {
	cfg  balance.Config
	rng  *Rand
	seed int64

	players []*Player
	localID string

	phase        Phase
	roundIndex   int
	reactorLimit int // fixed at game creation
	shipHealth01 float64
	overloads    int
	clears       int

	round     *RoundState
	lastRound *RoundState // resolved copy of the previous round, for display

	hand      []int // local player's dealt hand
	handRound int   // round the hand was dealt for; 0 = none

	engageSeat    int
	active        *Activation
	rolesAssigned bool
}

// New creates an engine for the given crew. Seat 0 is the local human
// player; the remaining seats are simulated on the same device. The
// reactor limit is derived from crew size once and never changes.
func New(cfg balance.Config, seed int64, names []string) *Engine {
	if len(names) == 0 {
		names = []string{"You"}
	}
	e := &Engine{
		cfg:          cfg,
		rng:          NewRand(seed),
		seed:         seed,
		phase:        PhaseLobby,
		roundIndex:   1,
		reactorLimit: ReactorLimit(len(names), cfg),
		shipHealth01: 1,
	}
	for i, name := range names {
		e.players = append(e.players, &Player{
			ID:        seatID(i),
			Name:      name,
			SeatIndex: i,
			Local:     i == 0,
		})
	}
	e.localID = e.players[0].ID
	e.round = newRound(1, len(e.players), cfg)
	return e
}

// Seed returns the seed the current random stream was created from.
func (e *Engine) Seed() int64 { return e.seed }

// Dispatch applies one event to the engine. Events that are invalid in
// the current phase, or whose payload fails validation, are ignored
// without any state mutation.
func (e *Engine) Dispatch(ev Event) {
	switch msg := ev.(type) {
	case Rename:
		e.rename(msg.Name)
	case SelectJob:
		e.selectJob(msg.Job)
	case Ready:
		e.ready()
	case ContinueReveal:
		e.continueReveal()
	case ChooseCard:
		e.chooseCard(msg.Value)
	case LockPlan:
		e.lockPlan()
	case Proceed:
		e.proceed()
	case Pass:
		e.pass()
	case ActivateItem:
		e.activateItem(msg.PlayerID, msg.ItemID)
	case MinigameComplete:
		e.completeMinigame(msg.Tier, msg.Score01)
	case ResolveMaintenance:
		e.resolveMaintenance()
	case Restart:
		e.restart()
	}
}

// --- Lobby ---

func (e *Engine) rename(name string) {
	if e.phase != PhaseLobby || name == "" {
		return
	}
	e.local().Name = name
}

func (e *Engine) selectJob(j Job) {
	if e.phase != PhaseLobby {
		return
	}
	if _, ok := jobItems[j]; !ok {
		return
	}
	e.local().Job = j
}

func (e *Engine) ready() {
	if e.phase != PhaseLobby {
		return
	}
	if !e.rolesAssigned {
		e.assignRolesAndJobs()
	}
	e.dealHand()
	e.phase = PhaseRoleReveal
}

// assignRolesAndJobs picks the saboteur from the random stream, honours
// the local player's lobby job selection, and cycles the remaining crew
// through the job list. Each player gets their single job-defining item
// here; the item set never changes afterwards.
func (e *Engine) assignRolesAndJobs() {
	saboteur := e.rng.Pick(len(e.players))

	jobs := Jobs()
	next := 0
	if e.local().Job != "" {
		// Start the cycle after the local choice so neighbours differ.
		for i, j := range jobs {
			if j == e.local().Job {
				next = i + 1
				break
			}
		}
	}
	for _, p := range e.players {
		p.Role = RoleCrew
		if p.SeatIndex == saboteur {
			p.Role = RoleSaboteur
		}
		if !(p.Local && p.Job != "") {
			p.Job = jobs[next%len(jobs)]
			next++
		}
		p.Items = []*ItemInstance{newItemForJob(p.Job)}
	}
	e.rolesAssigned = true
}

// dealHand deals the local player's hand for the current round, once.
func (e *Engine) dealHand() {
	if e.handRound == e.roundIndex {
		return
	}
	e.hand = e.rng.Deal(e.cfg.DeckSize, e.cfg.HandSize)
	e.handRound = e.roundIndex
}

// --- RoleReveal ---

func (e *Engine) continueReveal() {
	if e.phase != PhaseRoleReveal {
		return
	}
	e.dealHand()
	e.phase = PhasePlan
}

// --- Plan ---

func (e *Engine) chooseCard(value int) {
	if e.phase != PhasePlan {
		return
	}
	for _, c := range e.hand {
		if c == value {
			e.round.CardsPlayed[e.localID] = value
			return
		}
	}
}

// lockPlan commits the plan phase. Auto-fill for the simulated seats
// happens atomically with the transition: either every player has a card
// after this, or (local card missing) nothing happens at all.
func (e *Engine) lockPlan() {
	if e.phase != PhasePlan {
		return
	}
	if _, ok := e.round.CardsPlayed[e.localID]; !ok {
		return
	}
	total := 0
	for _, p := range e.players {
		if _, ok := e.round.CardsPlayed[p.ID]; !ok {
			e.round.CardsPlayed[p.ID] = e.rng.Card(e.cfg.DeckSize)
		}
		total += e.round.CardsPlayed[p.ID]
	}
	e.round.TotalBeforeItems = total
	e.round.TotalAfterItems = float64(total)
	e.round.ReactorEnergy01 = clamp01(float64(total) / float64(e.reactorLimit))
	e.phase = PhaseIgnition
}

// --- Ignition / Engage ---

func (e *Engine) proceed() {
	if e.phase != PhaseIgnition {
		return
	}
	e.phase = PhaseEngage
	e.engageSeat = 0
	e.resetEngageItems()
	e.advanceEngage()
}

func (e *Engine) resetEngageItems() {
	for _, p := range e.players {
		for _, it := range p.Items {
			if it.Timing == TimingEngage {
				it.Used = false
			}
		}
	}
}

// advanceEngage walks the seats in order. Simulated seats pass
// immediately; so does any seat with nothing left to activate. The walk
// stops on the local seat while it still holds an unused Engage item,
// and Maintenance begins once every seat has had its turn.
func (e *Engine) advanceEngage() {
	for e.engageSeat < len(e.players) {
		p := e.players[e.engageSeat]
		if p.Local && p.unusedEngageItem() != nil {
			return // wait for ActivateItem or Pass
		}
		e.engageSeat++
	}
	e.phase = PhaseMaintenance
}

func (e *Engine) pass() {
	if e.phase != PhaseEngage || e.active != nil {
		return
	}
	if e.engageSeat >= len(e.players) || !e.players[e.engageSeat].Local {
		return
	}
	e.engageSeat++
	e.advanceEngage()
}

func (e *Engine) activateItem(playerID string, itemID ItemID) {
	if e.phase != PhaseEngage || e.active != nil {
		return
	}
	if e.engageSeat >= len(e.players) {
		return
	}
	p := e.players[e.engageSeat]
	if !p.Local || p.ID != playerID {
		return
	}
	it := p.item(itemID)
	if it == nil || it.Used || it.Timing != TimingEngage {
		return
	}
	e.active = &Activation{PlayerID: p.ID, ItemID: it.ID, Job: p.Job}
}

// completeMinigame resolves the in-flight activation: the effect is
// computed against the running total as it stands right now, the total
// takes the delta immediately, the ship-health delta is recorded on the
// result and applied during Maintenance. Exactly one completion is
// accepted per activation; stragglers are dropped.
func (e *Engine) completeMinigame(tier Tier, score01 float64) {
	if e.active == nil || e.phase != PhaseEngage {
		return
	}
	act := e.active
	e.active = nil

	p := e.playerByID(act.PlayerID)
	it := p.item(act.ItemID)

	belowGate := e.round.TotalAfterItems < float64(e.round.Gate)
	deltaTotal, deltaShip := Effect(act.ItemID, tier, belowGate, e.cfg)

	e.round.TotalAfterItems = round2(e.round.TotalAfterItems + deltaTotal)
	it.Used = true
	e.round.Results = append(e.round.Results, MinigameResult{
		PlayerID:    act.PlayerID,
		Job:         act.Job,
		ItemID:      act.ItemID,
		Tier:        tier,
		Score01:     clamp01(score01),
		DeltaTotal:  deltaTotal,
		DeltaShip01: deltaShip,
	})

	e.engageSeat++
	e.advanceEngage()
}

// --- Maintenance ---

// resolveMaintenance classifies the round and applies persistent deltas.
// Overload takes priority over the gate check. The outcome adjustment is
// applied first, then each result's ship delta in resolution order; ship
// health is clamped to [0,1] after every adjustment so the deltas stack
// cumulatively rather than being discarded at the rail.
func (e *Engine) resolveMaintenance() {
	if e.phase != PhaseMaintenance || e.round.Outcome != OutcomeNone {
		return
	}
	r := e.round
	switch {
	case r.TotalAfterItems >= float64(e.reactorLimit):
		r.Outcome = OutcomeOverload
		e.shipHealth01 = shipAdjust(e.shipHealth01, -e.cfg.OverloadLoss)
		e.overloads++
	case r.TotalAfterItems >= float64(r.Gate):
		r.Outcome = OutcomeClear
		e.clears++
		if r.allSuccess() {
			e.shipHealth01 = shipAdjust(e.shipHealth01, e.cfg.AllSuccessGain)
		}
	default:
		r.Outcome = OutcomeFail
		e.shipHealth01 = shipAdjust(e.shipHealth01, -e.cfg.FailLoss)
	}
	for _, res := range r.Results {
		e.shipHealth01 = shipAdjust(e.shipHealth01, res.DeltaShip01)
	}

	e.lastRound = r
	if e.overloads >= overloadLimit || e.roundIndex >= e.cfg.RoundsMax {
		e.phase = PhaseGameOver
		return
	}

	e.roundIndex++
	e.round = newRound(e.roundIndex, len(e.players), e.cfg)
	e.resetEngageItems()
	e.dealHand()
	e.phase = PhasePlan
}

// CrewWins reports the displayed winner once the game is over: the crew
// wins only with enough cleared rounds and fewer than two overloads.
func (e *Engine) CrewWins() bool {
	return e.clears >= crewClearsToWin && e.overloads < overloadLimit
}

// --- GameOver ---

// restart resets every persistent counter to its initial value, derives
// a fresh random stream from the current one, and returns to the lobby
// with a fresh round 1. Roles and jobs are re-assigned on the next ready.
func (e *Engine) restart() {
	if e.phase != PhaseGameOver {
		return
	}
	e.seed = e.rng.Int63()
	e.rng = NewRand(e.seed)
	e.shipHealth01 = 1
	e.overloads = 0
	e.clears = 0
	e.roundIndex = 1
	e.round = newRound(1, len(e.players), e.cfg)
	e.lastRound = nil
	e.hand = nil
	e.handRound = 0
	e.engageSeat = 0
	e.active = nil
	e.rolesAssigned = false
	for _, p := range e.players {
		p.Role = RoleCrew
		p.Items = nil
	}
	e.phase = PhaseLobby
}

// --- helpers ---

func (e *Engine) local() *Player {
	return e.players[0]
}

func (e *Engine) playerByID(id string) *Player {
	for _, p := range e.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
