package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/core-collapse/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSession(seed int64, crewWon bool) SessionRecord {
	return SessionRecord{
		Seed:         seed,
		Players:      3,
		RoundsPlayed: 6,
		Clears:       4,
		Overloads:    1,
		ShipHealth01: 0.85,
		CrewWon:      crewWon,
		SaboteurJob:  engine.JobHelm,
		Results: []MinigameRow{
			{Round: 2, Player: "nova", Job: engine.JobCoolant,
				Item: engine.ItemVent, Tier: engine.TierSuccess, Score01: 0.9},
			{Round: 4, Player: "kai", Job: engine.JobFlux,
				Item: engine.ItemBoost, Tier: engine.TierPartial, Score01: 0.5},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRetrieveSession(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(sampleSession(42, true))
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero session ID")
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	got := sessions[0]
	if got.Seed != 42 || got.Players != 3 || got.RoundsPlayed != 6 {
		t.Errorf("session fields wrong: %+v", got)
	}
	if !got.CrewWon {
		t.Error("CrewWon not persisted")
	}
	if got.SaboteurJob != engine.JobHelm {
		t.Errorf("SaboteurJob = %v, want helm", got.SaboteurJob)
	}
	if got.ShipHealth01 != 0.85 {
		t.Errorf("ShipHealth01 = %v, want 0.85", got.ShipHealth01)
	}
}

func TestSessionResults(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(sampleSession(7, false))
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	results, err := store.SessionResults(id)
	if err != nil {
		t.Fatalf("SessionResults() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Round != 2 || results[0].Job != engine.JobCoolant ||
		results[0].Item != engine.ItemVent || results[0].Tier != engine.TierSuccess {
		t.Errorf("first result wrong: %+v", results[0])
	}
	if results[1].Player != "kai" || results[1].Score01 != 0.5 {
		t.Errorf("second result wrong: %+v", results[1])
	}

	// A session with no results reads back empty, not an error.
	empty, err := store.SessionResults(id + 999)
	if err != nil {
		t.Fatalf("SessionResults() on missing session failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no results, got %d", len(empty))
	}
}

func TestRecentSessionsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for seed := int64(1); seed <= 5; seed++ {
		if _, err := store.SaveSession(sampleSession(seed, seed%2 == 0)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	sessions, err := store.RecentSessions(3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	// Newest first.
	if sessions[0].Seed != 5 || sessions[1].Seed != 4 || sessions[2].Seed != 3 {
		t.Errorf("wrong order: seeds %d, %d, %d",
			sessions[0].Seed, sessions[1].Seed, sessions[2].Seed)
	}
}

func TestCrewWinRate(t *testing.T) {
	store := openTestStore(t)

	rate, total, err := store.CrewWinRate()
	if err != nil {
		t.Fatalf("CrewWinRate() failed: %v", err)
	}
	if rate != 0 || total != 0 {
		t.Errorf("empty store should report 0/0, got %v/%d", rate, total)
	}

	for _, won := range []bool{true, true, true, false} {
		if _, err := store.SaveSession(sampleSession(1, won)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	rate, total, err = store.CrewWinRate()
	if err != nil {
		t.Fatalf("CrewWinRate() failed: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if rate != 0.75 {
		t.Errorf("rate = %v, want 0.75", rate)
	}
}

func TestBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore(engine.JobFlux)
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("empty store best = %v, want 0", best)
	}

	rec := sampleSession(3, true)
	rec.Results = append(rec.Results, MinigameRow{
		Round: 5, Player: "kai", Job: engine.JobFlux,
		Item: engine.ItemBoost, Tier: engine.TierSuccess, Score01: 0.8,
	})
	if _, err := store.SaveSession(rec); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	best, err = store.BestScore(engine.JobFlux)
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0.8 {
		t.Errorf("best = %v, want 0.8", best)
	}
}

func TestNilStoreIsSilent(t *testing.T) {
	var store *Store

	if _, err := store.SaveSession(sampleSession(1, true)); err != nil {
		t.Errorf("nil SaveSession returned %v", err)
	}
	if _, err := store.RecentSessions(5); err != nil {
		t.Errorf("nil RecentSessions returned %v", err)
	}
	if _, _, err := store.CrewWinRate(); err != nil {
		t.Errorf("nil CrewWinRate returned %v", err)
	}
	if _, err := store.BestScore(engine.JobHelm); err != nil {
		t.Errorf("nil BestScore returned %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}
