package engine

// Event is a player- or collaborator-initiated action delivered to the
// engine's dispatch entry point. The set is sealed: one struct per
// dispatchable action, each carrying its payload. Events that are not
// valid in the current phase are silently ignored — the presentation
// layer disables the corresponding controls, the engine just refuses to
// mutate.
type Event interface {
	event()
}

// Rename sets the local player's display name (Lobby only).
type Rename struct {
	Name string
}

// SelectJob picks the local player's preferred job (Lobby only).
type SelectJob struct {
	Job Job
}

// Ready marks the local player ready: roles and jobs are assigned if they
// have not been yet, the round-1 hand is dealt, and the game moves to
// role reveal.
type Ready struct{}

// ContinueReveal dismisses the role reveal and enters planning.
type ContinueReveal struct{}

// ChooseCard selects a card from the local hand during Plan.
type ChooseCard struct {
	Value int
}

// LockPlan commits the plan: every player without a chosen card gets a
// random one, the reactor total is computed, and ignition begins.
// Ignored until the local player has chosen a card.
type LockPlan struct{}

// Proceed moves from Ignition into Engage.
type Proceed struct{}

// Pass skips the local player's Engage activation.
type Pass struct{}

// ActivateItem requests a minigame for one of the local player's unused
// Engage-timed items. Only valid on the local seat's turn while no other
// minigame is in flight.
type ActivateItem struct {
	PlayerID string
	ItemID   ItemID
}

// MinigameComplete is delivered by the active minigame collaborator,
// exactly once per activation. Completions with no activation in flight
// are ignored (idempotency guard).
type MinigameComplete struct {
	Tier    Tier
	Score01 float64
}

// ResolveMaintenance classifies the round outcome, applies ship-health
// and counter deltas, and either sets up the next round or ends the game.
type ResolveMaintenance struct{}

// Restart resets all persistent state from GameOver back to a fresh Lobby
// with a freshly derived random stream.
type Restart struct{}

func (Rename) event()             {}
func (SelectJob) event()          {}
func (Ready) event()              {}
func (ContinueReveal) event()     {}
func (ChooseCard) event()         {}
func (LockPlan) event()           {}
func (Proceed) event()            {}
func (Pass) event()               {}
func (ActivateItem) event()       {}
func (MinigameComplete) event()   {}
func (ResolveMaintenance) event() {}
func (Restart) event()            {}
