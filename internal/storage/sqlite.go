// Package storage provides SQLite-based persistence for profiles, runs and
// the transaction log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/candy-run/internal/profile"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection.
// Safe for concurrent use; database/sql pools the connection.
type Store struct {
	db *sql.DB
}

// Ensure Store satisfies the recorder's persistence interface.
var _ profile.Store = (*Store)(nil)

// RunStats contains aggregated statistics for one difficulty.
type RunStats struct {
	Runs         int
	HighScore    int
	AvgScore     float64
	TotalCandies int64
	LastPlayed   time.Time
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
		CREATE TABLE IF NOT EXISTS profiles (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			mode TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player_code TEXT NOT NULL,
			player_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			candies INTEGER NOT NULL DEFAULT 0,
			time_sec INTEGER NOT NULL DEFAULT 0,
			hard INTEGER NOT NULL DEFAULT 0,
			fell INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(hard, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player_code, created_at DESC);

		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			player_code TEXT NOT NULL,
			description TEXT NOT NULL,
			amount INTEGER NOT NULL,
			currency TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_player ON transactions(player_code, created_at DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

// parseTime handles both driver-decoded times and stored strings.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveProfile inserts or replaces a profile.
func (s *Store) SaveProfile(p *profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile %s: %w", p.Code, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO profiles (code, name, mode, data, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET name = excluded.name, mode = excluded.mode,
		   data = excluded.data, updated_at = excluded.updated_at`,
		p.Code, p.Name, string(p.Mode), string(data), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile %s: %w", p.Code, err)
	}
	return nil
}

// LoadProfile returns the profile with the given code, or nil if none exists.
func (s *Store) LoadProfile(code string) (*profile.Profile, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM profiles WHERE code = ?", code).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profile %s: %w", code, err)
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("storage: cannot decode profile %s: %w", code, err)
	}
	return &p, nil
}

// ProfileCodes lists every stored profile code, sorted.
func (s *Store) ProfileCodes() ([]string, error) {
	rows, err := s.db.Query("SELECT code FROM profiles ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return codes, nil
}

// SaveRun records a finished run.
func (s *Store) SaveRun(r profile.Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, player_code, player_name, score, candies, time_sec, hard, fell, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PlayerCode, r.PlayerName, r.Score, r.Candies, r.TimeSec,
		boolInt(r.Hard), boolInt(r.Fell), formatTime(r.At),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

const runColumns = `id, player_code, player_name, score, candies, time_sec, hard, fell, created_at`

func scanRuns(rows *sql.Rows) ([]profile.Run, error) {
	defer rows.Close()

	var runs []profile.Run
	for rows.Next() {
		var r profile.Run
		var hard, fell int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PlayerCode, &r.PlayerName, &r.Score, &r.Candies,
			&r.TimeSec, &hard, &fell, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Hard = hard != 0
		r.Fell = fell != 0
		r.At = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// TopRuns retrieves the best runs for one difficulty.
// Ties go to the longer run, then the earlier one.
func (s *Store) TopRuns(hard bool, limit int) ([]profile.Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE hard = ?
		 ORDER BY score DESC, time_sec DESC, created_at ASC
		 LIMIT ?`,
		boolInt(hard), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns retrieves a player's most recent runs.
func (s *Store) PlayerRuns(code string, limit int) ([]profile.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player_code = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		code, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

// HighScore returns the best score for one difficulty.
// Returns 0 if no runs exist.
func (s *Store) HighScore(hard bool) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE hard = ?",
		boolInt(hard),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// GetRunStats retrieves aggregated statistics for one difficulty.
func (s *Store) GetRunStats(hard bool) (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(candies), 0), MAX(created_at)
		 FROM runs WHERE hard = ?`,
		boolInt(hard),
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalCandies, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

// ClearRuns deletes every run for one difficulty.
func (s *Store) ClearRuns(hard bool) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE hard = ?", boolInt(hard))
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveTransaction appends a wallet change to the log.
func (s *Store) SaveTransaction(t profile.Transaction) error {
	_, err := s.db.Exec(
		`INSERT INTO transactions (id, player_code, description, amount, currency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.PlayerCode, t.Desc, t.Amount, string(t.Currency), formatTime(t.At),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save transaction: %w", err)
	}
	return nil
}

// Transactions returns a player's most recent transactions, newest first.
func (s *Store) Transactions(code string, limit int) ([]profile.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player_code, description, amount, currency, created_at
		 FROM transactions
		 WHERE player_code = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		code, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query transactions: %w", err)
	}
	defer rows.Close()

	var out []profile.Transaction
	for rows.Next() {
		var t profile.Transaction
		var cur string
		var createdAt any
		if err := rows.Scan(&t.ID, &t.PlayerCode, &t.Desc, &t.Amount, &cur, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		t.Currency = profile.Currency(cur)
		t.At = parseTime(createdAt)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

const globalResetKey = "global_reset"

// GlobalReset returns the administrator reset timestamp (unix ms), 0 if unset.
func (s *Store) GlobalReset() (int64, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", globalResetKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query global reset: %w", err)
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("storage: bad global reset value %q: %w", v, err)
	}
	return ts, nil
}

// SetGlobalReset schedules a progress reset for every profile on next login.
func (s *Store) SetGlobalReset(ts int64) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		globalResetKey, strconv.FormatInt(ts, 10),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set global reset: %w", err)
	}
	return nil
}
