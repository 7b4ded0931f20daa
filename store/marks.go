package store

import (
	"database/sql"
	"fmt"
)

// Mark is a named directory bookmark.
type Mark struct {
	Name string
	Path string
}

// AddMark points name at path, replacing any previous target.
func AddMark(db *sql.DB, name, path string) error {
	query := `
		INSERT INTO marks (name, path) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET path = excluded.path
	`
	_, err := db.Exec(query, name, path)
	if err != nil {
		return fmt.Errorf("failed to add mark %q: %w", name, err)
	}
	return nil
}

// GetMarks returns all bookmarks ordered by name.
func GetMarks(db *sql.DB) ([]Mark, error) {
	query := `SELECT name, path FROM marks ORDER BY name`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get marks: %w", err)
	}
	defer rows.Close()

	var marks []Mark
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.Name, &m.Path); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// RemoveMark deletes the bookmark called name. It reports whether one existed.
func RemoveMark(db *sql.DB, name string) (bool, error) {
	query := `DELETE FROM marks WHERE name = ?`
	res, err := db.Exec(query, name)
	if err != nil {
		return false, fmt.Errorf("failed to remove mark %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove mark %q: %w", name, err)
	}
	return n > 0, nil
}
