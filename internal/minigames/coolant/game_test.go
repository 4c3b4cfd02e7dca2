package coolant

import (
	"strings"
	"testing"

	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
)

func testConfig(seed int64, energy float64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		Energy01: energy,
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig(99, 0.7)

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	input := core.NewInputFrame()
	for i := 0; i < durationTicks; i++ {
		input.Clear()
		switch {
		case i%11 == 0:
			input.Set(core.ActionLeft)
		case i%13 == 0:
			input.Set(core.ActionRight)
		case i%7 == 0:
			input.Set(core.ActionTap)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if g1.leaks != g2.leaks {
		t.Errorf("leak state mismatch: %v vs %v", g1.leaks, g2.leaks)
	}
	if g1.spawned != g2.spawned || g1.sealed != g2.sealed {
		t.Errorf("counter mismatch: %d/%d vs %d/%d",
			g1.sealed, g1.spawned, g2.sealed, g2.spawned)
	}
}

func TestActivePlaySealsEveryLeak(t *testing.T) {
	g := New()
	g.Reset(testConfig(42, 0))

	// Chase the leftmost open leak: step toward it, squeeze once on it.
	input := core.NewInputFrame()
	for !g.done {
		input.Clear()
		target := -1
		for i, size := range g.leaks {
			if size > 0 {
				target = i
				break
			}
		}
		switch {
		case target < 0:
			// nothing open, hold position
		case target < g.cursor:
			input.Set(core.ActionLeft)
		case target > g.cursor:
			input.Set(core.ActionRight)
		default:
			input.Set(core.ActionTap)
		}
		g.Step(input)
	}

	if g.spawned == 0 {
		t.Fatal("no leaks spawned")
	}
	if g.sealed != g.spawned {
		t.Fatalf("expected all %d leaks sealed, got %d", g.spawned, g.sealed)
	}
	tier, score := g.Outcome()
	if tier != engine.TierSuccess || score != 1 {
		t.Errorf("expected full success, got %v score %v", tier, score)
	}
}

func TestIdleRunFails(t *testing.T) {
	g := New()
	g.Reset(testConfig(7, 1))

	input := core.NewInputFrame()
	for !g.done {
		g.Step(input)
	}

	if g.spawned == 0 {
		t.Fatal("no leaks spawned")
	}
	if g.sealed != 0 {
		t.Fatalf("idle run sealed %d leaks", g.sealed)
	}
	tier, score := g.Outcome()
	if tier != engine.TierFail || score != 0 {
		t.Errorf("expected fail with score 0, got %v score %v", tier, score)
	}
}

func TestCursorStaysOnLine(t *testing.T) {
	g := New()
	g.Reset(testConfig(1, 0))

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < slots+3; i++ {
		g.Step(left)
	}
	if g.cursor != 0 {
		t.Errorf("cursor ran off the left end: %d", g.cursor)
	}

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	for i := 0; i < 2*slots; i++ {
		g.Step(right)
	}
	if g.cursor != slots-1 {
		t.Errorf("cursor ran off the right end: %d", g.cursor)
	}
}

func TestEnergyRaisesPressure(t *testing.T) {
	calm := New()
	calm.Reset(testConfig(1, 0))
	hot := New()
	hot.Reset(testConfig(1, 1))

	if hot.spawnEvery >= calm.spawnEvery {
		t.Errorf("high energy should spawn faster: %d vs %d",
			hot.spawnEvery, calm.spawnEvery)
	}
	if hot.growth <= calm.growth {
		t.Errorf("high energy should grow leaks faster: %v vs %v",
			hot.growth, calm.growth)
	}
}

func TestRenderShowsTitle(t *testing.T) {
	g := New()
	g.Reset(testConfig(42, 0))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "COOLANT LEAKS") {
		t.Error("render output missing title")
	}
}
