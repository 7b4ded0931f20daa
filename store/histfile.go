package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/montrey/cle/search"
)

// HistoryFile is a History stored as one path per line, sorted and
// deduplicated. Every mutation rewrites the file through a rename.
type HistoryFile struct {
	Path string
}

func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{Path: path}
}

// List returns the entries in file order. A missing file is an empty history.
func (h *HistoryFile) List() ([]string, error) {
	f, err := os.Open(h.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	lines, err := search.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	entries := lines[:0]
	for _, l := range lines {
		if l != "" {
			entries = append(entries, l)
		}
	}
	return entries, nil
}

func (h *HistoryFile) Add(path string) error {
	entries, err := h.sorted()
	if err != nil {
		return err
	}
	i, found := slices.BinarySearch(entries, path)
	if found {
		return nil
	}
	return h.write(slices.Insert(entries, i, path))
}

func (h *HistoryFile) Remove(path string) (bool, error) {
	entries, err := h.sorted()
	if err != nil {
		return false, err
	}
	i, found := slices.BinarySearch(entries, path)
	if !found {
		return false, nil
	}
	return true, h.write(slices.Delete(entries, i, i+1))
}

// sorted reads the entries and restores the sorted, deduplicated form in case
// the file was edited by hand.
func (h *HistoryFile) sorted() ([]string, error) {
	entries, err := h.List()
	if err != nil {
		return nil, err
	}
	slices.Sort(entries)
	return slices.Compact(entries), nil
}

func (h *HistoryFile) write(entries []string) error {
	dir := filepath.Dir(h.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	defer os.Remove(tmp.Name())

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.Path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}
