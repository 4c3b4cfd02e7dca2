package balance

import (
	_ "embed"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/balance.yaml
var defaultYAML []byte

// Load returns the balance configuration. Search order:
// customPath -> ~/.corecollapse/balance.yaml -> ./configs/balance.yaml ->
// embedded default. Loading never fails: anything unreadable or malformed
// falls back to the defaults, per field where possible. Gameplay must not
// be interrupted by a bad balance file.
func Load(customPath string) Config {
	cfg := Default()
	// Embedded default is authoritative over the hardcoded values when
	// it parses; both describe the same sheet.
	mergeYAML(&cfg, defaultYAML)

	var paths []string
	if customPath != "" {
		paths = append(paths, customPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".corecollapse", "balance.yaml"))
		}
		paths = append(paths, filepath.Join("configs", "balance.yaml"))
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		mergeYAML(&cfg, data)
		break
	}
	return cfg
}

// mergeYAML applies a partial override over cfg. Every field is decoded
// on its own: one malformed field falls back to its default without
// discarding the rest of the document. Only gate_offsets is all-or-
// nothing, since a partially-replaced cycle would be meaningless.
func mergeYAML(cfg *Config, data []byte) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return
	}

	intField(doc, "rounds_max", &cfg.RoundsMax, positive)
	floatField(doc, "overload_loss", &cfg.OverloadLoss)
	floatField(doc, "fail_loss", &cfg.FailLoss)
	floatField(doc, "all_success_gain", &cfg.AllSuccessGain)
	intField(doc, "deck_size", &cfg.DeckSize, positive)
	intField(doc, "hand_size", &cfg.HandSize, positive)
	intField(doc, "gate_base_per_player", &cfg.GateBasePerPlayer, nil)
	intField(doc, "reactor_limit_per_player", &cfg.ReactorLimitPerPlayer, positive)
	offsetsField(doc, "gate_offsets", &cfg.GateOffsets)

	if sec, ok := section(doc, "boost"); ok {
		floatField(sec, "delta_total", &cfg.Boost.DeltaTotal)
		floatField(sec, "delta_ship", &cfg.Boost.DeltaShip)
	}
	if sec, ok := section(doc, "vent"); ok {
		floatField(sec, "delta_total", &cfg.Vent.DeltaTotal)
		floatField(sec, "delta_ship", &cfg.Vent.DeltaShip)
	}
	if sec, ok := section(doc, "equalizer"); ok {
		floatField(sec, "below_gate", &cfg.Equalizer.BelowGate)
		floatField(sec, "otherwise", &cfg.Equalizer.Otherwise)
		floatField(sec, "delta_ship", &cfg.Equalizer.DeltaShip)
	}

	// A hand can never exceed the deck it is dealt from.
	if cfg.HandSize > cfg.DeckSize {
		cfg.HandSize = cfg.DeckSize
	}
}

func positive(v int) bool { return v > 0 }

func intField(doc map[string]yaml.Node, key string, dst *int, valid func(int) bool) {
	node, ok := doc[key]
	if !ok {
		return
	}
	var v int
	if err := node.Decode(&v); err != nil {
		return
	}
	if valid != nil && !valid(v) {
		return
	}
	*dst = v
}

func floatField(doc map[string]yaml.Node, key string, dst *float64) {
	node, ok := doc[key]
	if !ok {
		return
	}
	var v float64
	if err := node.Decode(&v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	*dst = v
}

// offsetsField replaces the gate offset cycle only when the override is a
// non-empty sequence of finite numbers; otherwise the default cycle is
// kept in full.
func offsetsField(doc map[string]yaml.Node, key string, dst *[]int) {
	node, ok := doc[key]
	if !ok {
		return
	}
	var vals []float64
	if err := node.Decode(&vals); err != nil || len(vals) == 0 {
		return
	}
	offs := make([]int, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
		offs[i] = int(math.Round(v))
	}
	*dst = offs
}

func section(doc map[string]yaml.Node, key string) (map[string]yaml.Node, bool) {
	node, ok := doc[key]
	if !ok {
		return nil, false
	}
	var sec map[string]yaml.Node
	if err := node.Decode(&sec); err != nil {
		return nil, false
	}
	return sec, true
}
