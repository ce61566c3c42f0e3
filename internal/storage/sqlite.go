// Package storage provides SQLite-based persistence for PixelFill runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID               int64
	LevelID          string
	LevelNum         int // 1-based position in the level catalog
	Player           string
	Status           string // "won" or "lost"
	Seed             uint64
	ShootersDeployed int
	LapsCompleted    int
	ElapsedTicks     uint64
	Elapsed          time.Duration
	CellsSolidified  int
	TotalCells       int
	CreatedAt        time.Time
}

// Won reports whether the run cleared its level.
func (r Run) Won() bool {
	return r.Status == StatusWon
}

// Run statuses as stored.
const (
	StatusWon  = "won"
	StatusLost = "lost"
)

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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			level_num INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			shooters_deployed INTEGER NOT NULL,
			laps_completed INTEGER NOT NULL DEFAULT 0,
			elapsed_ticks INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			cells_solidified INTEGER NOT NULL DEFAULT 0,
			total_cells INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, status, shooters_deployed, elapsed_ticks);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Status != StatusWon && r.Status != StatusLost {
		return 0, fmt.Errorf("storage: cannot save run with status %q", r.Status)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (level_id, level_num, player, status, seed, shooters_deployed, laps_completed,
		  elapsed_ticks, elapsed_ms, cells_solidified, total_cells)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.LevelNum, r.Player, r.Status, int64(r.Seed), r.ShootersDeployed, r.LapsCompleted,
		int64(r.ElapsedTicks), r.Elapsed.Milliseconds(), r.CellsSolidified, r.TotalCells,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, level_id, level_num, player, status, seed, shooters_deployed, laps_completed,
	elapsed_ticks, elapsed_ms, cells_solidified, total_cells, created_at`

// BestRun returns the best winning run of a level: fewest shooters deployed,
// then fewest ticks. The earliest run wins ties. Returns nil if the level
// was never cleared.
func (s *Store) BestRun(levelID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND status = ?
		 ORDER BY shooters_deployed ASC, elapsed_ticks ASC, id ASC
		 LIMIT 1`,
		levelID, StatusWon,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &r, nil
}

// TopRuns retrieves the best N winning runs of a level in BestRun order.
func (s *Store) TopRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND status = ?
		 ORDER BY shooters_deployed ASC, elapsed_ticks ASC, id ASC
		 LIMIT ?`,
		levelID, StatusWon, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighestLevel returns the highest level number ever cleared, or 0.
func (s *Store) HighestLevel() (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level_num) FROM runs WHERE status = ?",
		StatusWon,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query highest level: %w", err)
	}
	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

// ClearRuns deletes all runs of a level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Plays      int
	Wins       int
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0), MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		StatusWon, levelID,
	).Scan(&stats.Plays, &stats.Wins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var seed, ticks, elapsedMS int64
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.LevelID,
		&r.LevelNum,
		&r.Player,
		&r.Status,
		&seed,
		&r.ShootersDeployed,
		&r.LapsCompleted,
		&ticks,
		&elapsedMS,
		&r.CellsSolidified,
		&r.TotalCells,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Seed = uint64(seed)
	r.ElapsedTicks = uint64(ticks)
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
