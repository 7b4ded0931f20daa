package store

import (
	"path/filepath"

	"github.com/montrey/cle/search"
)

// Match returns the history entry whose last path component is closest to
// query. Ties go to the entry listed first.
func Match(h History, query string) (string, bool, error) {
	entries, err := h.List()
	if err != nil {
		return "", false, err
	}
	best, ok := search.ClosestFunc(entries, query, filepath.Base)
	return best, ok, nil
}

// MatchMark returns the bookmark whose name is closest to query.
func MatchMark(marks []Mark, query string) (Mark, bool) {
	return search.ClosestFunc(marks, query, func(m Mark) string { return m.Name })
}
