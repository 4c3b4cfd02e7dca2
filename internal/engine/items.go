package engine

import "github.com/vovakirdan/core-collapse/internal/balance"

// Effect computes the (reactor-total delta, ship-health delta) of one
// item activation. Stateless: everything it needs is in the arguments.
//
// belowGate must reflect the round's running total at the moment the
// item activates, not the pre-item total — earlier activations in the
// same round can flip it for a later EQUALIZER.
func Effect(item ItemID, tier Tier, belowGate bool, cfg balance.Config) (deltaTotal, deltaShip01 float64) {
	switch item {
	case ItemBoost:
		deltaTotal = cfg.Boost.DeltaTotal * boostTotalMult(tier)
		deltaShip01 = cfg.Boost.DeltaShip // no tier scaling, defaults to no ship effect
	case ItemVent:
		deltaTotal = cfg.Vent.DeltaTotal * ventTotalMult(tier)
		deltaShip01 = cfg.Vent.DeltaShip * ventShipMult(tier)
	case ItemEqualizer:
		base := cfg.Equalizer.Otherwise
		if belowGate {
			base = cfg.Equalizer.BelowGate
		}
		deltaTotal = base * equalizerTotalMult(tier)
		deltaShip01 = cfg.Equalizer.DeltaShip
	}
	return round2(deltaTotal), round2(deltaShip01)
}

// boostTotalMult: a failed boost fizzles entirely.
func boostTotalMult(tier Tier) float64 {
	switch tier {
	case TierSuccess:
		return 1
	case TierPartial:
		return 1.0 / 3
	default:
		return 0
	}
}

// ventTotalMult: even a failed vent still bleeds some load.
func ventTotalMult(tier Tier) float64 {
	switch tier {
	case TierSuccess:
		return 1
	case TierPartial:
		return 2.0 / 3
	default:
		return 1.0 / 3
	}
}

// ventShipMult: a clean vent heals the hull, a botched one tears it.
func ventShipMult(tier Tier) float64 {
	switch tier {
	case TierSuccess:
		return 1
	case TierPartial:
		return 0
	default:
		return -0.4
	}
}

func equalizerTotalMult(tier Tier) float64 {
	switch tier {
	case TierSuccess:
		return 1
	case TierPartial:
		return 0.5
	default:
		return 0
	}
}
