package balance

import (
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.RoundsMax != 6 || cfg.DeckSize != 9 || cfg.HandSize != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.GateOffsets, []int{-2, -1, 0, 1, 2}) {
		t.Errorf("gate offsets = %v", cfg.GateOffsets)
	}
	if cfg.Vent.DeltaTotal != -3 || cfg.Vent.DeltaShip != 0.05 {
		t.Errorf("vent balance = %+v", cfg.Vent)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, defaultYAML)
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded default drifted from hardcoded: %+v", cfg)
	}
}

func TestPartialOverrideMergesPerField(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, []byte("rounds_max: 8\nvent:\n  delta_total: -4\n"))

	if cfg.RoundsMax != 8 {
		t.Errorf("rounds_max = %d, want 8", cfg.RoundsMax)
	}
	if cfg.Vent.DeltaTotal != -4 {
		t.Errorf("vent delta_total = %v, want -4", cfg.Vent.DeltaTotal)
	}
	// Untouched fields keep their defaults.
	if cfg.Vent.DeltaShip != 0.05 || cfg.DeckSize != 9 {
		t.Errorf("unrelated fields changed: %+v", cfg)
	}
}

func TestMalformedFieldsFallBackIndividually(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, []byte("rounds_max: -3\ndeck_size: 0\nfail_loss: .nan\nhand_size: 4\n"))

	if cfg.RoundsMax != 6 {
		t.Errorf("negative rounds_max accepted: %d", cfg.RoundsMax)
	}
	if cfg.DeckSize != 9 {
		t.Errorf("zero deck_size accepted: %d", cfg.DeckSize)
	}
	if cfg.FailLoss != 0.1 {
		t.Errorf("NaN fail_loss accepted: %v", cfg.FailLoss)
	}
	if cfg.HandSize != 4 {
		t.Errorf("valid hand_size dropped: %d", cfg.HandSize)
	}
}

func TestTypeMismatchDropsOnlyThatField(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, []byte("rounds_max: \"eight\"\nfail_loss: 0.2\n"))

	if cfg.RoundsMax != 6 {
		t.Errorf("string rounds_max accepted: %d", cfg.RoundsMax)
	}
	if cfg.FailLoss != 0.2 {
		t.Errorf("valid fail_loss dropped alongside the bad field: %v", cfg.FailLoss)
	}
}

func TestGateOffsetsReplacedOnlyAsAWhole(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, []byte("gate_offsets: [1, .inf, 3]\n"))
	if !reflect.DeepEqual(cfg.GateOffsets, []int{-2, -1, 0, 1, 2}) {
		t.Errorf("non-finite offset list accepted: %v", cfg.GateOffsets)
	}

	mergeYAML(&cfg, []byte("gate_offsets: [0, 3]\n"))
	if !reflect.DeepEqual(cfg.GateOffsets, []int{0, 3}) {
		t.Errorf("finite offset list rejected: %v", cfg.GateOffsets)
	}
}

func TestHandNeverExceedsDeck(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, []byte("deck_size: 4\nhand_size: 7\n"))
	if cfg.HandSize != 4 {
		t.Errorf("hand_size = %d, want capped to deck 4", cfg.HandSize)
	}
}

func TestUnparseableDocumentKeepsDefaults(t *testing.T) {
	cfg := Default()
	mergeYAML(&cfg, []byte("{{{ not yaml"))
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("broken document mutated the config")
	}
}

func TestLoadNeverFails(t *testing.T) {
	// A missing custom path must still yield a playable config.
	cfg := Load("/definitely/not/a/real/path.yaml")
	if cfg.RoundsMax <= 0 || cfg.DeckSize <= 0 {
		t.Errorf("Load returned unusable config: %+v", cfg)
	}
}
