package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatch is matched by every NoMatchError.
var ErrNoMatch = errors.New("no directory matching")

// NoMatchError reports a token that matched nothing from the path reached so far.
type NoMatchError struct {
	Query       string
	Path        string
	Suggestions []string
}

func (e *NoMatchError) Error() string {
	msg := fmt.Sprintf("no directory matching '%s' in '%s'", e.Query, e.Path)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// FilesystemError wraps a failed directory read during resolution.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to read '%s': %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
