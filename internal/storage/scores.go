package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoGame is returned when a score is saved without a game ID.
var ErrNoGame = errors.New("storage: empty game id")

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates every run of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time // Zero when the game was never played
}

// Orderings for queryScores. Ties on score go to the earlier run.
const (
	byBest   = "score DESC, id ASC"
	byRecent = "id DESC"
)

// SaveScore records a finished run and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	if gameID == "" {
		return 0, ErrNoGame
	}
	res, err := s.db.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: save score for %s: %w", gameID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: save score for %s: %w", gameID, err)
	}
	return id, nil
}

// TopScores returns up to limit runs, best first. A non-positive limit
// means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(gameID, byBest, limit)
}

// RecentScores returns up to limit runs, newest first. A non-positive
// limit means 10.
func (s *Store) RecentScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(gameID, byRecent, limit)
}

// queryScores runs the shared score query.
func (s *Store) queryScores(gameID, order string, limit int) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		"SELECT id, game_id, score, created_at FROM scores WHERE game_id = ? ORDER BY "+order+" LIMIT ?",
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores for %s: %w", gameID, err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e         ScoreEntry
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: query scores for %s: %w", gameID, err)
	}
	return entries, nil
}

// HighScore returns the best score for gameID, or 0 when there is none.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: high score for %s: %w", gameID, err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every run of gameID and reports how many went.
func (s *Store) ClearScores(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: clear scores for %s: %w", gameID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: clear scores for %s: %w", gameID, err)
	}
	return n, nil
}

// GetGameStats aggregates the runs of gameID.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: stats for %s: %w", gameID, err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
