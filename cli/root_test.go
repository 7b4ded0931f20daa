package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montrey/cle/search"
)

// isolate points every cle location into a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	for _, k := range []string{"CLE_LOG_LEVEL", "CLE_HISTORY_BACKEND", "CLE_HISTORY_PATH", "CLE_CONFIG"} {
		t.Setenv(k, "")
	}
	return home
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

// mkTree creates dirs and empty files (names ending in .go or .txt or .md)
// under root.
func mkTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		p := filepath.Join(root, e)
		switch filepath.Ext(e) {
		case ".go", ".txt", ".md":
			require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
			require.NoError(t, os.WriteFile(p, nil, 0644))
		default:
			require.NoError(t, os.MkdirAll(p, 0755))
		}
	}
}

func TestQueryInputs(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "-i", "one two", "-i", "three four", "-i", "five six", "owo")
	require.NoError(t, err)
	assert.Equal(t, "one two", out)
}

func TestQueryStdin(t *testing.T) {
	isolate(t)

	out, err := run(t, "main.go\nREADME.md\ngo.mod\n", "rdm")
	require.NoError(t, err)
	assert.Equal(t, "README.md", out)
}

func TestQuerySeparator(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "-i", "alpha", "-i", "beta", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta", out)

	out, err = run(t, "", "-i", "alpha", "-i", "beta", "--sep", ",", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "alpha,beta", out)
}

func TestQueryNoMatch(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "-i", "alpha", "zzz")
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrNoMatch)
	assert.Contains(t, err.Error(), "'zzz'")
}

func TestQueryNoInputs(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "x")
	require.Error(t, err)
	assert.Equal(t, "no valid inputs", err.Error())
}

func TestQueryCwd(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	mkTree(t, dir, "src", "scripts", "sample.txt")
	testChdir(t, dir)

	out, err := run(t, "", "--cwd", "s")
	require.NoError(t, err)
	assert.Equal(t, "src", out)

	out, err = run(t, "", "--cwd", "-d", "s")
	require.NoError(t, err)
	assert.Equal(t, "src", out)

	out, err = run(t, "", "--cwd", "-f", "s")
	require.NoError(t, err)
	assert.Equal(t, "sample.txt", out)
}

func TestQueryRecursive(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	mkTree(t, dir, "src/cmd/main.go", "scripts", "cmd.txt")
	testChdir(t, dir)

	out, err := run(t, "", "--cwd", "-r", "s", "c", "m")
	require.NoError(t, err)
	assert.Equal(t, "src\ncmd\nmain.go", out)

	_, err = run(t, "", "--cwd", "-r", "s", "zzz")
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrNoMatch)
}

func TestQueryFlagErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"files without cwd", []string{"-f", "x"}, "require --cwd"},
		{"recursive without cwd", []string{"-r", "x"}, "require --cwd"},
		{"files and dirs", []string{"--cwd", "-f", "-d", "x"}, "mutually exclusive"},
		{"inputs and cwd", []string{"--cwd", "-i", "a", "x"}, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQueryRequiresArgs(t *testing.T) {
	isolate(t)

	_, err := run(t, "")
	assert.Error(t, err)
}

func TestQueryLiteralSubcommandName(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "-i", "mark", "-i", "museum", "--", "mark")
	require.NoError(t, err)
	assert.Equal(t, "mark", out)
}
