package minigames_test

import (
	"testing"

	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/minigames"

	_ "github.com/vovakirdan/core-collapse/internal/minigames/coolant"
	_ "github.com/vovakirdan/core-collapse/internal/minigames/flux"
	_ "github.com/vovakirdan/core-collapse/internal/minigames/needle"
)

func TestEveryJobHasAMinigame(t *testing.T) {
	for _, job := range []engine.Job{engine.JobFlux, engine.JobCoolant, engine.JobHelm} {
		g, err := minigames.ForJob(job)
		if err != nil {
			t.Fatalf("ForJob(%v): %v", job, err)
		}
		if g.Job() != job {
			t.Errorf("minigame %q bound to %v, want %v", g.ID(), g.Job(), job)
		}
		if g.ID() == "" || g.Title() == "" {
			t.Errorf("minigame for %v missing ID or title", job)
		}
	}
}

func TestForJobUnknown(t *testing.T) {
	if _, err := minigames.ForJob(engine.Job("janitor")); err == nil {
		t.Error("expected error for unbound job")
	}
}

func TestListCoversRegistrations(t *testing.T) {
	infos := minigames.List()
	if len(infos) != 3 {
		t.Fatalf("expected 3 registered minigames, got %d", len(infos))
	}
	seen := make(map[engine.Job]bool)
	for _, info := range infos {
		if seen[info.Job] {
			t.Errorf("duplicate job %v in list", info.Job)
		}
		seen[info.Job] = true
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		score float64
		want  engine.Tier
	}{
		{0, engine.TierFail},
		{0.34, engine.TierFail},
		{0.35, engine.TierPartial},
		{0.6, engine.TierPartial},
		{0.74, engine.TierPartial},
		{0.75, engine.TierSuccess},
		{1, engine.TierSuccess},
	}
	for _, tc := range cases {
		if got := minigames.TierFor(tc.score); got != tc.want {
			t.Errorf("TierFor(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}
