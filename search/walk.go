package search

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/monochromegane/go-gitignore"
)

// Kind filters directory listings by entry type.
type Kind int

const (
	Anything Kind = iota
	FilesOnly
	DirsOnly
)

func (k Kind) String() string {
	switch k {
	case FilesOnly:
		return "files"
	case DirsOnly:
		return "dirs"
	default:
		return "any"
	}
}

// ListDir returns the names of the immediate children of dir, in filename
// order, filtered by kind. Symlinks are classified by their target.
func ListDir(dir string, kind Kind) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if kind == Anything {
			names = append(names, e.Name())
			continue
		}
		isDir, isFile := classify(dir, e)
		if (kind == DirsOnly && isDir) || (kind == FilesOnly && isFile) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func classify(dir string, e fs.DirEntry) (isDir, isFile bool) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir(), e.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	if err != nil {
		// Dangling link: neither.
		return false, false
	}
	return info.IsDir(), info.Mode().IsRegular()
}

// ReadLines splits r into lines without their terminators.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// Walker searches a directory subtree breadth-first.
type Walker struct {
	// SkipHidden ignores dot-directories.
	SkipHidden bool
	// RespectGitignore loads <root>/.gitignore and skips ignored directories.
	RespectGitignore bool
}

// FindDir returns the first directory below root whose name matches query.
// Directories are visited level by level, siblings in filename order, so the
// result is the shallowest match and reproducible. Symlinked directories may
// match but are never descended into.
func (w Walker) FindDir(root, query string) (string, bool, error) {
	ignore := w.ignoreMatcher(root)

	queue := []string{root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", false, err
		}

		for _, e := range entries {
			isDir, _ := classify(dir, e)
			if !isDir {
				continue
			}
			name := e.Name()
			path := filepath.Join(dir, name)

			if w.SkipHidden && strings.HasPrefix(name, ".") {
				continue
			}
			if ignore != nil && ignore.Match(path, true) {
				continue
			}

			if Matches(name, query) {
				return path, true, nil
			}
			if e.IsDir() {
				queue = append(queue, path)
			}
		}
	}

	return "", false, nil
}

func (w Walker) ignoreMatcher(root string) gitignore.IgnoreMatcher {
	if !w.RespectGitignore {
		return nil
	}
	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err != nil {
		return nil
	}
	m, err := gitignore.NewGitIgnore(gitignorePath)
	if err != nil {
		return nil
	}
	return m
}
