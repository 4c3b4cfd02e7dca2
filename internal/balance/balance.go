// Package balance provides the game balance configuration: gate and
// overload thresholds, item effect magnitudes, deck and hand sizes, and
// round limits. A hardcoded default is always available; YAML overrides
// merge over it field by field.
package balance

// ItemBalance defines the base magnitudes of one item's effect.
type ItemBalance struct {
	DeltaTotal float64 `yaml:"delta_total"`
	DeltaShip  float64 `yaml:"delta_ship"`
}

// EqualizerBalance defines the context-dependent EQUALIZER magnitudes:
// the reactor delta depends on whether the running total is still under
// the round's gate when the item resolves.
type EqualizerBalance struct {
	BelowGate float64 `yaml:"below_gate"`
	Otherwise float64 `yaml:"otherwise"`
	DeltaShip float64 `yaml:"delta_ship"`
}

// Config is the full balance sheet injected into the engine.
type Config struct {
	RoundsMax             int     `yaml:"rounds_max"`
	OverloadLoss          float64 `yaml:"overload_loss"`
	FailLoss              float64 `yaml:"fail_loss"`
	AllSuccessGain        float64 `yaml:"all_success_gain"`
	DeckSize              int     `yaml:"deck_size"`
	HandSize              int     `yaml:"hand_size"`
	GateBasePerPlayer     int     `yaml:"gate_base_per_player"`
	GateOffsets           []int   `yaml:"gate_offsets"`
	ReactorLimitPerPlayer int     `yaml:"reactor_limit_per_player"`

	Boost     ItemBalance      `yaml:"boost"`
	Vent      ItemBalance      `yaml:"vent"`
	Equalizer EqualizerBalance `yaml:"equalizer"`
}

// Default returns the canonical balance sheet.
func Default() Config {
	return Config{
		RoundsMax:             6,
		OverloadLoss:          0.3,
		FailLoss:              0.1,
		AllSuccessGain:        0.05,
		DeckSize:              9,
		HandSize:              5,
		GateBasePerPlayer:     4,
		GateOffsets:           []int{-2, -1, 0, 1, 2},
		ReactorLimitPerPlayer: 6,
		Boost:                 ItemBalance{DeltaTotal: 3, DeltaShip: 0},
		Vent:                  ItemBalance{DeltaTotal: -3, DeltaShip: 0.05},
		Equalizer:             EqualizerBalance{BelowGate: 2, Otherwise: -2, DeltaShip: 0},
	}
}
