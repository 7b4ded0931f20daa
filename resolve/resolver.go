package resolve

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/montrey/cle/search"
)

const maxSuggestions = 3

// Resolver turns a sequence of query tokens into a directory path.
type Resolver struct {
	Walker search.Walker
	Logger *slog.Logger
}

// New returns a Resolver logging to logger. A nil logger discards output.
func New(walker search.Walker, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{Walker: walker, Logger: logger}
}

// state is the working path and the position in the token sequence. A token
// transition either commits a new path or fails; path is never half-updated.
type state struct {
	path   string
	tokens []Token
	cursor int
}

// Resolve consumes tokens starting from the directory start and returns the
// final path. The first token that matches nothing aborts resolution.
func (r *Resolver) Resolve(start string, tokens []Token) (string, error) {
	s := &state{path: filepath.Clean(start), tokens: tokens}

	for s.cursor < len(s.tokens) {
		tok := s.tokens[s.cursor]
		before := s.path

		switch tok.Kind {
		case Root:
			s.path = tok.Value
			s.cursor++

		case AncestorPop:
			s.path = r.pop(s.path, tok.Count)
			s.cursor++

		case AncestorSearch:
			p, ok := searchAncestors(s.path, tok.Value)
			if !ok {
				return "", &NoMatchError{Query: tok.Value, Path: s.path}
			}
			s.path = p
			s.cursor++

		case Recursive:
			p, ok, err := r.Walker.FindDir(s.path, tok.Value)
			if err != nil {
				return "", &FilesystemError{Path: s.path, Err: err}
			}
			if !ok {
				return "", &NoMatchError{Query: tok.Value, Path: s.path}
			}
			s.path = p
			s.cursor++

		default:
			end := s.cursor
			for end < len(s.tokens) && s.tokens[end].Kind == Plain {
				end++
			}
			p, err := r.resolveChain(s.path, s.tokens[s.cursor:end])
			if err != nil {
				return "", err
			}
			s.path = p
			s.cursor = end
		}

		r.Logger.Debug("resolved token", "token", tok.String(), "from", before, "to", s.path)
	}

	return s.path, nil
}

// pop removes n trailing segments, stopping at the filesystem root.
func (r *Resolver) pop(path string, n uint64) string {
	for i := uint64(0); i < n; i++ {
		parent := filepath.Dir(path)
		if parent == path {
			r.Logger.Debug("pop stopped at filesystem root", "path", path, "remaining", n-i)
			break
		}
		path = parent
	}
	return path
}

// searchAncestors truncates path after the first segment, counted from the
// filesystem root, whose name matches query.
func searchAncestors(path, query string) (string, bool) {
	sep := string(filepath.Separator)
	prefix := filepath.VolumeName(path)
	rest := path[len(prefix):]
	if strings.HasPrefix(rest, sep) {
		prefix += sep
	}
	rest = strings.Trim(rest, sep)
	if rest == "" {
		return "", false
	}

	segments := strings.Split(rest, sep)
	for i, seg := range segments {
		if search.Matches(seg, query) {
			return prefix + filepath.Join(segments[:i+1]...), true
		}
	}
	return "", false
}

// resolveChain narrows a set of candidate directories one level per token,
// then commits the shortest surviving path.
func (r *Resolver) resolveChain(start string, chain []Token) (string, error) {
	set := []string{start}

	for _, tok := range chain {
		var next, seen []string
		for _, dir := range set {
			names, err := search.ListDir(dir, search.DirsOnly)
			if err != nil {
				return "", &FilesystemError{Path: dir, Err: err}
			}
			for _, name := range names {
				if search.Matches(name, tok.Value) {
					next = append(next, filepath.Join(dir, name))
				}
			}
			seen = append(seen, names...)
		}

		if len(next) == 0 {
			return "", &NoMatchError{
				Query:       tok.Value,
				Path:        start,
				Suggestions: search.Suggest(tok.Value, seen, maxSuggestions),
			}
		}

		r.Logger.Debug("chain narrowed", "token", tok.Value, "candidates", len(next))
		set = next
	}

	best, _ := search.Shortest(set)
	return best, nil
}
