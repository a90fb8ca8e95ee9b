package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultTopLimit = 10

// RunRecord is what a front end saves when a run ends.
type RunRecord struct {
	RunID  string // generated when empty
	Preset string
	Score  int
	Length int
	Reason string // wall, self, board_full
	Source string // tui, ssh, web
}

// ScoreEntry is a saved run as read back from the database.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Preset    string
	Score     int
	Length    int
	Reason    string
	Source    string
	CreatedAt time.Time
}

// Stats aggregates the runs of one preset.
type Stats struct {
	Preset     string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	MaxLength  int
	LastPlayed time.Time // zero when the preset was never played
}

// SaveRun stores a finished run and returns its row ID. Saving the same
// RunID twice fails.
func (s *Store) SaveRun(rec RunRecord) (int64, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (run_id, preset, score, length, reason, source, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Preset, rec.Score, rec.Length, rec.Reason, rec.Source, s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run %s: %w", rec.RunID, err)
	}
	return res.LastInsertId()
}

// SaveScore stores a run that carries no end reason or source.
func (s *Store) SaveScore(preset string, score, length int) (int64, error) {
	return s.SaveRun(RunRecord{Preset: preset, Score: score, Length: length})
}

// TopScores returns the best runs of a preset, highest score first and the
// earlier run first on ties. A non-positive limit means 10.
func (s *Store) TopScores(preset string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, preset, score, length, reason, source, ended_at
		 FROM runs WHERE preset = ?
		 ORDER BY score DESC, id ASC LIMIT ?`,
		preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: top scores for %s: %w", preset, err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			endedAt int64
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Preset, &e.Score, &e.Length, &e.Reason, &e.Source, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		e.CreatedAt = time.UnixMilli(endedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HighScore returns the best score of a preset, or 0 if it has no runs.
func (s *Store) HighScore(preset string) (int, error) {
	var high int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM runs WHERE preset = ?`, preset).Scan(&high)
	if err != nil {
		return 0, fmt.Errorf("storage: high score for %s: %w", preset, err)
	}
	return high, nil
}

// ClearScores deletes every run of a preset.
func (s *Store) ClearScores(preset string) error {
	if _, err := s.db.Exec(`DELETE FROM runs WHERE preset = ?`, preset); err != nil {
		return fmt.Errorf("storage: clear %s: %w", preset, err)
	}
	return nil
}

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(MAX(length), 0), MAX(ended_at)`

// Stats aggregates the runs of one preset. A preset without runs yields
// zero stats, not an error.
func (s *Store) Stats(preset string) (*Stats, error) {
	st := &Stats{Preset: preset}
	row := s.db.QueryRow(`SELECT `+statsColumns+` FROM runs WHERE preset = ?`, preset)
	if err := scanStats(row, st); err != nil {
		return nil, fmt.Errorf("storage: stats for %s: %w", preset, err)
	}
	return st, nil
}

// AllStats returns stats for every preset that has at least one run.
func (s *Store) AllStats() (map[string]*Stats, error) {
	rows, err := s.db.Query(`SELECT preset, ` + statsColumns + ` FROM runs GROUP BY preset`)
	if err != nil {
		return nil, fmt.Errorf("storage: stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*Stats)
	for rows.Next() {
		st := &Stats{}
		if err := scanStats(rows, st, &st.Preset); err != nil {
			return nil, fmt.Errorf("storage: scan stats: %w", err)
		}
		all[st.Preset] = st
	}
	return all, rows.Err()
}

// scanStats reads statsColumns, preceded by any extra leading columns.
func scanStats(row interface{ Scan(...any) error }, st *Stats, lead ...any) error {
	var last sql.NullInt64
	dest := append(lead, &st.RunsCount, &st.HighScore, &st.AvgScore, &st.MaxLength, &last)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if last.Valid {
		st.LastPlayed = time.UnixMilli(last.Int64)
	}
	return nil
}
