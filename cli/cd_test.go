package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montrey/cle/resolve"
)

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", abs)
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			panic("testChdir: restoring working directory: " + err.Error())
		}
	})
}

func chdirTree(t *testing.T, entries ...string) string {
	t.Helper()
	dir := t.TempDir()
	mkTree(t, dir, entries...)
	testChdir(t, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}

func TestCd(t *testing.T) {
	isolate(t)
	wd := chdirTree(t, "projects/cle/internal", "projects/other", "pictures", "docs/deep/target")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"chain", []string{"pro", "cle"}, filepath.Join(wd, "projects", "cle")},
		{"slash separated", []string{"pro/cle/int"}, filepath.Join(wd, "projects", "cle", "internal")},
		{"pop after chain", []string{"pro", "cle", ".."}, filepath.Join(wd, "projects")},
		{"recursive", []string{"%tar"}, filepath.Join(wd, "docs", "deep", "target")},
		{"root", []string{filepath.Join(wd, "docs"), "de"}, filepath.Join(wd, "docs", "deep")},
		{"pop count", []string{"pro", "cle", "int", "..2"}, filepath.Join(wd, "projects")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", append([]string{"cd"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCdNoMatch(t *testing.T) {
	isolate(t)
	chdirTree(t, "documents")

	_, err := run(t, "", "cd", "dcmnts")
	require.Error(t, err)

	var nm *resolve.NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "dcmnts", nm.Query)
	assert.Contains(t, nm.Suggestions, "documents")
}

func TestCdHistoryFallback(t *testing.T) {
	isolate(t)
	elsewhere := t.TempDir()
	target := filepath.Join(elsewhere, "wanted")
	require.NoError(t, os.Mkdir(target, 0755))

	chdirTree(t, "local")

	_, err := run(t, "", "history", "add", target)
	require.NoError(t, err)

	out, err := run(t, "", "cd", "wan")
	require.NoError(t, err)
	assert.Equal(t, target, out)

	_, err = run(t, "", "cd", "--history=false", "wan")
	assert.ErrorIs(t, err, resolve.ErrNoMatch)

	t.Run("only for a single plain token", func(t *testing.T) {
		_, err := run(t, "", "cd", "local", "wan")
		assert.ErrorIs(t, err, resolve.ErrNoMatch)
	})

	t.Run("disabled by config", func(t *testing.T) {
		_, err := run(t, "", "config", "history.fallback", "false")
		require.NoError(t, err)
		_, err = run(t, "", "cd", "wan")
		assert.ErrorIs(t, err, resolve.ErrNoMatch)

		out, err := run(t, "", "cd", "--history", "wan")
		require.NoError(t, err)
		assert.Equal(t, target, out)
	})
}

func TestCdLocalWinsOverHistory(t *testing.T) {
	isolate(t)
	elsewhere := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(elsewhere, "wanted"), 0755))
	wd := chdirTree(t, "wanted")

	_, err := run(t, "", "history", "add", filepath.Join(elsewhere, "wanted"))
	require.NoError(t, err)

	out, err := run(t, "", "cd", "wanted")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "wanted"), out)
}
