// Package storage provides SQLite-based persistence for finished game
// sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Gameplay never depends on storage; a nil *Store is a
// valid "don't persist" choice for every caller.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/core-collapse/internal/engine"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished game: how the run went and who won.
type SessionRecord struct {
	ID           int64
	Seed         int64
	Players      int
	RoundsPlayed int
	Clears       int
	Overloads    int
	ShipHealth01 float64
	CrewWon      bool
	SaboteurJob  engine.Job
	CreatedAt    time.Time

	// Results holds the per-round minigame outcomes. Populated on save;
	// RecentSessions leaves it empty, fetch via SessionResults.
	Results []MinigameRow
}

// MinigameRow is one item activation's skill-check outcome within a session.
type MinigameRow struct {
	ID        int64
	SessionID int64
	Round     int
	Player    string
	Job       engine.Job
	Item      engine.ItemID
	Tier      engine.Tier
	Score01   float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			players INTEGER NOT NULL,
			rounds_played INTEGER NOT NULL,
			clears INTEGER NOT NULL,
			overloads INTEGER NOT NULL,
			ship_health REAL NOT NULL,
			crew_won INTEGER NOT NULL,
			saboteur_job TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS minigame_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			round INTEGER NOT NULL,
			player TEXT NOT NULL,
			job TEXT NOT NULL,
			item TEXT NOT NULL,
			tier TEXT NOT NULL,
			score REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_session ON minigame_results(session_id);
		CREATE INDEX IF NOT EXISTS idx_results_best ON minigame_results(job, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSession records a finished game and its minigame results in one
// transaction. Returns the ID of the inserted session. A nil store
// silently saves nothing.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	if s == nil {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	crewWon := 0
	if rec.CrewWon {
		crewWon = 1
	}
	res, err := tx.Exec(
		`INSERT INTO sessions
		 (seed, players, rounds_played, clears, overloads, ship_health, crew_won, saboteur_job)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed,
		rec.Players,
		rec.RoundsPlayed,
		rec.Clears,
		rec.Overloads,
		rec.ShipHealth01,
		crewWon,
		string(rec.SaboteurJob),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, r := range rec.Results {
		if _, err := tx.Exec(
			`INSERT INTO minigame_results
			 (session_id, round, player, job, item, tier, score)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, r.Round, r.Player, string(r.Job), string(r.Item), string(r.Tier), r.Score01,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save minigame result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// RecentSessions retrieves the most recent finished games, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, players, rounds_played, clears, overloads,
		        ship_health, crew_won, saboteur_job, created_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var crewWon int
		var saboteur string
		var createdAt any
		if err := rows.Scan(
			&rec.ID, &rec.Seed, &rec.Players, &rec.RoundsPlayed,
			&rec.Clears, &rec.Overloads, &rec.ShipHealth01,
			&crewWon, &saboteur, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CrewWon = crewWon != 0
		rec.SaboteurJob = engine.Job(saboteur)
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SessionResults retrieves the minigame outcomes of one session, in
// activation order.
func (s *Store) SessionResults(sessionID int64) ([]MinigameRow, error) {
	if s == nil {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, round, player, job, item, tier, score
		 FROM minigame_results
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query minigame results: %w", err)
	}
	defer rows.Close()

	var results []MinigameRow
	for rows.Next() {
		var r MinigameRow
		var job, item, tier string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Round, &r.Player,
			&job, &item, &tier, &r.Score01); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Job = engine.Job(job)
		r.Item = engine.ItemID(item)
		r.Tier = engine.Tier(tier)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// CrewWinRate returns the fraction of recorded sessions the crew won,
// along with the total session count. Zero sessions yields rate 0.
func (s *Store) CrewWinRate() (float64, int, error) {
	if s == nil {
		return 0, 0, nil
	}

	var total, won int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(crew_won), 0) FROM sessions`,
	).Scan(&total, &won)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query win rate: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(won) / float64(total), total, nil
}

// BestScore returns the highest minigame score recorded for the given
// job. Returns 0 if no results exist.
func (s *Store) BestScore(job engine.Job) (float64, error) {
	if s == nil {
		return 0, nil
	}

	var best sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT MAX(score) FROM minigame_results WHERE job = ?`,
		string(job),
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}

// parseTime converts a scanned datetime column, which the driver may
// hand back as time.Time or as a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
