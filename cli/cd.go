package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montrey/cle/resolve"
	"github.com/montrey/cle/store"
)

func (a *app) newCdCmd() *cobra.Command {
	var useHistory bool

	cmd := &cobra.Command{
		Use:   "cd <token>...",
		Short: "Resolve a sequence of fuzzy directory names",
		Long: `Resolve a sequence of fuzzy directory names from the working directory
and print the resulting path.

Token syntax:
  name      match an immediate subdirectory; consecutive names narrow
            together and the shortest surviving path wins
  /path     start over from an absolute path
  ..        go up one directory; ..N goes up N directories
  ..name    go up to the first ancestor (from /) matching name
  %name     nearest descendant directory matching name

With a single plain name that matches nothing, the history is searched
by last path component instead (see history.fallback).`,
		Example: `  cle cd src cmd
  cle cd .. %test
  cle cd ..proj docs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("history") {
				useHistory = a.cfg.History.Fallback
			}
			return a.runCd(cmd, args, useHistory)
		},
	}

	cmd.Flags().BoolVar(&useHistory, "history", true, "fall back to history when a single name matches nothing")
	return cmd
}

func (a *app) runCd(cmd *cobra.Command, args []string, useHistory bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to identify current directory: %w", err)
	}

	tokens := resolve.ParseTokens(args)
	path, err := resolve.New(a.walker(), a.logger).Resolve(wd, tokens)

	if errors.Is(err, resolve.ErrNoMatch) && useHistory && len(tokens) == 1 && tokens[0].Kind == resolve.Plain {
		if hit, ok := a.historyFallback(tokens[0].Value); ok {
			path, err = hit, nil
		}
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), path)
	return err
}

// historyFallback looks query up in history; a broken history store is
// logged and treated as a miss so the original error is reported.
func (a *app) historyFallback(query string) (string, bool) {
	h, closeFn, err := a.openHistory()
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return "", false
	}
	defer closeFn()

	hit, ok, err := store.Match(h, query)
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return "", false
	}
	if ok {
		a.logger.Debug("resolved from history", "query", query, "path", hit)
	}
	return hit, ok
}
