// Package engine implements the Core Collapse round engine: the entity
// model, the phase state machine, the reactor-load pipeline and the item
// effect resolver. It contains pure logic with no external dependencies
// (especially no Bubble Tea); the platform handles input mapping, timing
// and rendering.
package engine

import "fmt"

// Job identifies the crew position a player holds. Each job carries
// exactly one ship item and one bound minigame.
type Job string

const (
	JobFlux    Job = "flux"    // flux technician, carries the BOOST charge
	JobCoolant Job = "coolant" // coolant operator, carries the VENT valve
	JobHelm    Job = "helm"    // helm balancer, carries the EQUALIZER
)

// Jobs returns all jobs in seat-assignment order.
func Jobs() []Job {
	return []Job{JobFlux, JobCoolant, JobHelm}
}

// ItemID identifies one of the three ship items.
type ItemID string

const (
	ItemBoost     ItemID = "BOOST"
	ItemVent      ItemID = "VENT"
	ItemEqualizer ItemID = "EQUALIZER"
)

// jobItems binds each job 1:1 to its item.
var jobItems = map[Job]ItemID{
	JobFlux:    ItemBoost,
	JobCoolant: ItemVent,
	JobHelm:    ItemEqualizer,
}

// ItemForJob returns the item bound to the given job.
func ItemForJob(j Job) ItemID {
	return jobItems[j]
}

// JobForItem returns the job that owns the given item.
func JobForItem(id ItemID) Job {
	for j, item := range jobItems {
		if item == id {
			return j
		}
	}
	return ""
}

// Timing tags the phase in which an item may be activated.
type Timing string

const (
	TimingPlan   Timing = "plan"
	TimingEngage Timing = "engage"
)

// Role is a player's hidden allegiance, assigned once per game.
type Role int

const (
	RoleCrew Role = iota
	RoleSaboteur
)

func (r Role) String() string {
	if r == RoleSaboteur {
		return "Saboteur"
	}
	return "Crew"
}

// Tier is the discrete outcome classification returned by a minigame.
type Tier string

const (
	TierFail    Tier = "fail"
	TierPartial Tier = "partial"
	TierSuccess Tier = "success"
)

// ItemInstance is a concrete item held by one player. It is created at
// job assignment and never added to or removed after that; only its Used
// flag mutates (reset at the start of every Engage phase, set exactly once
// when its minigame resolves).
type ItemInstance struct {
	ID     ItemID
	Timing Timing
	Job    Job
	Used   bool
}

// newItemForJob creates the single job-defining item instance.
// All current jobs carry Engage-timed items.
func newItemForJob(j Job) *ItemInstance {
	return &ItemInstance{
		ID:     ItemForJob(j),
		Timing: TimingEngage,
		Job:    j,
	}
}

// Player is one crew seat. SeatIndex fixes turn order for the whole game.
// Role is hidden from other players and never changes during a game.
type Player struct {
	ID        string
	Name      string
	SeatIndex int
	Role      Role
	Job       Job
	Items     []*ItemInstance
	Local     bool
}

// unusedEngageItem returns the player's first unused Engage-timed item,
// or nil. A player with no such item simply passes their Engage turn.
func (p *Player) unusedEngageItem() *ItemInstance {
	for _, it := range p.Items {
		if it.Timing == TimingEngage && !it.Used {
			return it
		}
	}
	return nil
}

// item returns the player's item with the given ID, or nil.
func (p *Player) item(id ItemID) *ItemInstance {
	for _, it := range p.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// seatID builds the stable player identifier for a seat.
func seatID(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}
