package engine

// PlayerView is the read-only view of one seat. Roles stay hidden: only
// the local player's own role is ever present, and the saboteur is named
// on the snapshot itself once the game is over.
type PlayerView struct {
	ID       string
	Name     string
	Seat     int
	Job      Job
	Local    bool
	ItemID   ItemID
	ItemUsed bool
}

// RoundView is the read-only copy of a round's state.
type RoundView struct {
	Index            int
	Gate             int
	CardsChosen      int // how many seats have a card this round
	LocalCard        int // 0 if the local player has not chosen
	TotalBeforeItems int
	TotalAfterItems  float64
	ReactorEnergy01  float64
	Outcome          Outcome
	Results          []MinigameResult
}

// Snapshot is the full read-only state exposed to the presentation
// layer. It is rebuilt on every call; mutating it has no effect on the
// engine.
type Snapshot struct {
	Phase        Phase
	Seed         int64
	RoundIndex   int
	RoundsMax    int
	ReactorLimit int
	ShipHealth01 float64
	Overloads    int
	Clears       int

	Players   []PlayerView
	LocalID   string
	LocalRole Role

	Round     RoundView
	LastRound *RoundView

	Hand       []int
	EngageSeat int
	Active     *Activation // minigame in flight, or nil

	// GameOver fields; zero values before the terminal phase.
	CrewWins bool
	Saboteur string // saboteur's player id, revealed at game over
}

// Snapshot returns the current committed state. Safe to call between any
// two dispatched events.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:        e.phase,
		Seed:         e.seed,
		RoundIndex:   e.roundIndex,
		RoundsMax:    e.cfg.RoundsMax,
		ReactorLimit: e.reactorLimit,
		ShipHealth01: e.shipHealth01,
		Overloads:    e.overloads,
		Clears:       e.clears,
		LocalID:      e.localID,
		LocalRole:    e.local().Role,
		Round:        e.roundView(e.round),
		EngageSeat:   e.engageSeat,
	}
	for _, p := range e.players {
		pv := PlayerView{
			ID:    p.ID,
			Name:  p.Name,
			Seat:  p.SeatIndex,
			Job:   p.Job,
			Local: p.Local,
		}
		if it := p.item(ItemForJob(p.Job)); it != nil {
			pv.ItemID = it.ID
			pv.ItemUsed = it.Used
		}
		s.Players = append(s.Players, pv)
	}
	if e.lastRound != nil {
		lr := e.roundView(e.lastRound)
		s.LastRound = &lr
	}
	s.Hand = append([]int(nil), e.hand...)
	if e.active != nil {
		act := *e.active
		s.Active = &act
	}
	if e.phase == PhaseGameOver {
		s.CrewWins = e.CrewWins()
		for _, p := range e.players {
			if p.Role == RoleSaboteur {
				s.Saboteur = p.ID
			}
		}
	}
	return s
}

func (e *Engine) roundView(r *RoundState) RoundView {
	return RoundView{
		Index:            r.Index,
		Gate:             r.Gate,
		CardsChosen:      len(r.CardsPlayed),
		LocalCard:        r.CardsPlayed[e.localID],
		TotalBeforeItems: r.TotalBeforeItems,
		TotalAfterItems:  r.TotalAfterItems,
		ReactorEnergy01:  r.ReactorEnergy01,
		Outcome:          r.Outcome,
		Results:          append([]MinigameResult(nil), r.Results...),
	}
}
