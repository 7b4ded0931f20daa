package store

import (
	"database/sql"
	"fmt"
	"time"
)

// History is a persisted, sorted, deduplicated list of directory paths.
type History interface {
	Add(path string) error
	Remove(path string) (bool, error)
	List() ([]string, error)
}

type HistoryItem struct {
	Path        string
	Frequency   int
	LastVisited time.Time
}

// UpdateFrecency updates the frequency and last_visited timestamp for a path.
// It inserts the path if it doesn't exist.
func UpdateFrecency(db *sql.DB, path string) error {
	query := `
		INSERT INTO history (path, frequency, last_visited)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			frequency = frequency + 1,
			last_visited = CURRENT_TIMESTAMP
	`
	_, err := db.Exec(query, path)
	if err != nil {
		return fmt.Errorf("failed to update frecency: %w", err)
	}
	return nil
}

// GetHistory returns the history items ordered by path.
func GetHistory(db *sql.DB) ([]HistoryItem, error) {
	query := `SELECT path, frequency, last_visited FROM history ORDER BY path`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.Path, &item.Frequency, &item.LastVisited); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// RemoveHistory deletes path from the history table.
func RemoveHistory(db *sql.DB, path string) (bool, error) {
	res, err := db.Exec(`DELETE FROM history WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("failed to remove history entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove history entry: %w", err)
	}
	return n > 0, nil
}

// SQLHistory is a History backed by the history table.
type SQLHistory struct {
	db *sql.DB
}

func NewSQLHistory(db *sql.DB) *SQLHistory {
	return &SQLHistory{db: db}
}

func (h *SQLHistory) Add(path string) error {
	return UpdateFrecency(h.db, path)
}

func (h *SQLHistory) Remove(path string) (bool, error) {
	return RemoveHistory(h.db, path)
}

func (h *SQLHistory) List() ([]string, error) {
	items, err := GetHistory(h.db)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(items))
	for _, item := range items {
		paths = append(paths, item.Path)
	}
	return paths, nil
}
