// Package resolve walks a filesystem path one fuzzy query token at a time.
package resolve

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind identifies the syntax of a query token.
type Kind int

const (
	// Plain matches an immediate subdirectory. Consecutive plain tokens are
	// resolved together as a chain.
	Plain Kind = iota
	// Root replaces the working path with the token's literal value.
	Root
	// AncestorPop removes Count trailing segments from the working path.
	AncestorPop
	// AncestorSearch truncates the working path at the first segment
	// matching Value.
	AncestorSearch
	// Recursive selects the nearest descendant directory matching Value.
	Recursive
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case AncestorPop:
		return "pop"
	case AncestorSearch:
		return "ancestor"
	case Recursive:
		return "recursive"
	default:
		return "plain"
	}
}

// Token is a parsed query token.
type Token struct {
	Kind  Kind
	Value string
	Count uint64
}

func (t Token) String() string {
	switch t.Kind {
	case AncestorPop:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Count)
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	}
}

// ParseToken classifies a single raw token. The root prefix is checked first,
// then (after trailing slashes are trimmed) the ancestor prefix, then the
// recursive prefix.
func ParseToken(raw string) Token {
	if strings.HasPrefix(raw, "/") {
		return Token{Kind: Root, Value: filepath.Clean(raw)}
	}

	t := strings.TrimRight(raw, "/")

	if rest, ok := strings.CutPrefix(t, ".."); ok {
		if rest == "" {
			return Token{Kind: AncestorPop, Count: 1}
		}
		if n, err := strconv.ParseUint(rest, 10, 64); err == nil {
			return Token{Kind: AncestorPop, Count: n}
		}
		return Token{Kind: AncestorSearch, Value: rest}
	}

	if rest, ok := strings.CutPrefix(t, "%"); ok {
		return Token{Kind: Recursive, Value: rest}
	}

	return Token{Kind: Plain, Value: t}
}

// ParseTokens parses raw command-line tokens. A relative token containing
// inner slashes ("../..", "src/cmd") is split into one token per segment,
// since no directory name can contain a slash.
func ParseTokens(raw []string) []Token {
	var tokens []Token
	for _, r := range raw {
		if strings.HasPrefix(r, "/") {
			tokens = append(tokens, ParseToken(r))
			continue
		}
		trimmed := strings.TrimRight(r, "/")
		if !strings.Contains(trimmed, "/") {
			tokens = append(tokens, ParseToken(r))
			continue
		}
		for _, part := range strings.Split(trimmed, "/") {
			if part == "" {
				continue
			}
			tokens = append(tokens, ParseToken(part))
		}
	}
	return tokens
}
