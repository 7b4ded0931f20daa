// Package cli implements the cle command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/montrey/cle/config"
	"github.com/montrey/cle/search"
	"github.com/montrey/cle/store"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfg        *config.Config
	paths      *config.Paths
	logger     *slog.Logger
	configPath string
	verbose    bool
}

type queryOptions struct {
	inputs    []string
	cwd       bool
	filesOnly bool
	dirsOnly  bool
	recursive bool
	sep       string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	opts := &queryOptions{}

	root := &cobra.Command{
		Use:   "cle <query>...",
		Short: "Fuzzy-search the input and return the closest match",
		Long: `cle - close enough

Fuzzy-search a list of inputs with one or more query strings.
The closest match to each query string is printed, joined by the separator.
If no inputs are provided, inputs are read from stdin.

A query matches when its characters appear in order; once a run of
characters has matched, a mismatch skips to the next word. The shortest
matching input wins.`,
		Example: `  ls | cle rdm              # README.md
  cle -i one_two three_four ot
  cle --cwd -d src          # closest directory in the working directory
  cle --cwd -r s c main     # ./src/cmd/main.go style walk`,
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args, opts)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cle/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	f := root.Flags()
	f.StringArrayVarP(&opts.inputs, "inputs", "i", nil, "line of input to search (repeatable)")
	f.BoolVar(&opts.cwd, "cwd", false, "use working directory contents as inputs")
	f.BoolVarP(&opts.filesOnly, "files", "f", false, "with --cwd: only allow files in results")
	f.BoolVarP(&opts.dirsOnly, "dirs", "d", false, "with --cwd: only allow directories in results")
	f.BoolVarP(&opts.recursive, "recursive", "r", false, "with --cwd: match each query inside the previous result")
	f.StringVar(&opts.sep, "sep", "", "separator to join the results with (default newline)")

	root.AddCommand(
		a.newCdCmd(),
		a.newInitCmd(),
		a.newHistoryCmd(),
		a.newMarkCmd(),
		a.newPickCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.paths = config.DefaultPaths()
	if a.configPath == "" {
		a.configPath = a.paths.ConfigFile()
	}

	cfg, err := config.LoadFromFile(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.logger = config.NewLogger(cmd.ErrOrStderr(), level)
	return nil
}

func (a *app) walker() search.Walker {
	return search.Walker{
		SkipHidden:       a.cfg.Search.SkipHidden,
		RespectGitignore: a.cfg.Search.RespectGitignore,
	}
}

// openHistory returns the configured history backend and its closer.
func (a *app) openHistory() (store.History, func() error, error) {
	if a.cfg.History.Backend == "sqlite" {
		db, err := store.InitDB(a.paths.DatabaseFile())
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLHistory(db), db.Close, nil
	}
	return store.NewHistoryFile(a.cfg.HistoryPath(a.paths)), func() error { return nil }, nil
}

func (a *app) runQuery(cmd *cobra.Command, queries []string, opts *queryOptions) error {
	if opts.filesOnly && opts.dirsOnly {
		return errors.New("--files and --dirs are mutually exclusive")
	}
	if (opts.filesOnly || opts.dirsOnly || opts.recursive) && !opts.cwd {
		return errors.New("--files, --dirs and --recursive require --cwd")
	}
	if opts.cwd && len(opts.inputs) > 0 {
		return errors.New("--inputs and --cwd are mutually exclusive")
	}

	sep := a.cfg.Output.Separator
	if cmd.Flags().Changed("sep") {
		sep = opts.sep
	}

	kind := search.Anything
	switch {
	case opts.filesOnly:
		kind = search.FilesOnly
	case opts.dirsOnly:
		kind = search.DirsOnly
	}

	var results []string
	var err error
	if opts.recursive {
		wd, werr := os.Getwd()
		if werr != nil {
			return fmt.Errorf("failed to identify current directory: %w", werr)
		}
		results, err = a.matchSequence(wd, queries, kind)
	} else {
		var lines []string
		lines, err = a.inputLines(cmd, opts, kind)
		if err == nil {
			results, err = matchEach(lines, queries)
		}
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), strings.Join(results, sep))
	return err
}

func (a *app) inputLines(cmd *cobra.Command, opts *queryOptions, kind search.Kind) ([]string, error) {
	var lines []string
	switch {
	case len(opts.inputs) > 0:
		lines = opts.inputs
	case opts.cwd:
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to identify current directory: %w", err)
		}
		lines, err = search.ListDir(wd, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to read contents of '%s': %w", wd, err)
		}
	default:
		var err error
		lines, err = search.ReadLines(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	}

	if len(lines) == 0 {
		return nil, errors.New("no valid inputs")
	}
	a.logger.Debug("loaded inputs", "count", len(lines))
	return lines, nil
}

func matchEach(lines, queries []string) ([]string, error) {
	results := make([]string, 0, len(queries))
	for _, q := range queries {
		best, ok := search.Closest(lines, q)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", search.ErrNoMatch, q)
		}
		results = append(results, best)
	}
	return results, nil
}

// matchSequence matches query i against the listing reached by the first i
// results. Every query but the last is restricted to directories.
func (a *app) matchSequence(dir string, queries []string, last search.Kind) ([]string, error) {
	results := make([]string, 0, len(queries))
	working := dir
	for i, q := range queries {
		kind := search.DirsOnly
		if i == len(queries)-1 {
			kind = last
		}
		names, err := search.ListDir(working, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to read contents of '%s': %w", working, err)
		}
		best, ok := search.Closest(names, q)
		if !ok {
			return nil, fmt.Errorf("%w: '%s' in '%s'", search.ErrNoMatch, q, working)
		}
		a.logger.Debug("matched", "query", q, "result", best, "dir", working)
		results = append(results, best)
		working = filepath.Join(working, best)
	}
	return results, nil
}
