package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw  string
		want Token
	}{
		{"/", Token{Kind: Root, Value: "/"}},
		{"/usr/local/", Token{Kind: Root, Value: "/usr/local"}},
		{"..", Token{Kind: AncestorPop, Count: 1}},
		{"../", Token{Kind: AncestorPop, Count: 1}},
		{"..3", Token{Kind: AncestorPop, Count: 3}},
		{"..0", Token{Kind: AncestorPop, Count: 0}},
		{"..src", Token{Kind: AncestorSearch, Value: "src"}},
		{"..-1", Token{Kind: AncestorSearch, Value: "-1"}},
		{"%sub", Token{Kind: Recursive, Value: "sub"}},
		{"%sub/", Token{Kind: Recursive, Value: "sub"}},
		{"%", Token{Kind: Recursive, Value: ""}},
		{"docs", Token{Kind: Plain, Value: "docs"}},
		{"docs/", Token{Kind: Plain, Value: "docs"}},
		{"a%b", Token{Kind: Plain, Value: "a%b"}},
		{"", Token{Kind: Plain, Value: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseToken(tt.raw))
		})
	}
}

func TestParseTokensSplitsInnerSlashes(t *testing.T) {
	got := ParseTokens([]string{"../..", "src/cmd/", "/etc/ssh", "%x"})
	assert.Equal(t, []Token{
		{Kind: AncestorPop, Count: 1},
		{Kind: AncestorPop, Count: 1},
		{Kind: Plain, Value: "src"},
		{Kind: Plain, Value: "cmd"},
		{Kind: Root, Value: "/etc/ssh"},
		{Kind: Recursive, Value: "x"},
	}, got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "root", Root.String())
	assert.Equal(t, "pop", AncestorPop.String())
	assert.Equal(t, "ancestor", AncestorSearch.String())
	assert.Equal(t, "recursive", Recursive.String())
	assert.Equal(t, `pop(2)`, Token{Kind: AncestorPop, Count: 2}.String())
	assert.Equal(t, `plain("a")`, Token{Kind: Plain, Value: "a"}.String())
}
