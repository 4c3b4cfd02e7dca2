package engine

import (
	"testing"

	"github.com/vovakirdan/core-collapse/internal/balance"
)

func TestEffectTables(t *testing.T) {
	cfg := balance.Default()

	tests := []struct {
		name      string
		item      ItemID
		tier      Tier
		belowGate bool
		wantTotal float64
		wantShip  float64
	}{
		{"boost success", ItemBoost, TierSuccess, false, 3, 0},
		{"boost partial", ItemBoost, TierPartial, false, 1, 0},
		{"boost fail", ItemBoost, TierFail, false, 0, 0},

		{"vent success", ItemVent, TierSuccess, false, -3, 0.05},
		{"vent partial", ItemVent, TierPartial, false, -2, 0},
		{"vent fail still bleeds", ItemVent, TierFail, false, -1, -0.02},

		{"equalizer below gate success", ItemEqualizer, TierSuccess, true, 2, 0},
		{"equalizer below gate partial", ItemEqualizer, TierPartial, true, 1, 0},
		{"equalizer above gate success", ItemEqualizer, TierSuccess, false, -2, 0},
		{"equalizer above gate partial", ItemEqualizer, TierPartial, false, -1, 0},
		{"equalizer fail", ItemEqualizer, TierFail, true, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dt, ds := Effect(tc.item, tc.tier, tc.belowGate, cfg)
			if dt != tc.wantTotal {
				t.Errorf("deltaTotal = %v, want %v", dt, tc.wantTotal)
			}
			if ds != tc.wantShip {
				t.Errorf("deltaShip = %v, want %v", ds, tc.wantShip)
			}
		})
	}
}

func TestEffectRounding(t *testing.T) {
	// Fractional base magnitudes must come out rounded to two decimals.
	cfg := balance.Default()
	cfg.Boost.DeltaTotal = 1 // partial multiplier 1/3 -> 0.333...

	dt, _ := Effect(ItemBoost, TierPartial, false, cfg)
	if dt != 0.33 {
		t.Errorf("deltaTotal = %v, want 0.33", dt)
	}
}

func TestJobItemBinding(t *testing.T) {
	for _, j := range Jobs() {
		item := ItemForJob(j)
		if item == "" {
			t.Errorf("job %q has no item", j)
		}
		if JobForItem(item) != j {
			t.Errorf("item %q binds back to %q, want %q", item, JobForItem(item), j)
		}
	}
}
