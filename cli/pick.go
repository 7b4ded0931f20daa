package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/montrey/cle/store"
	"github.com/montrey/cle/ui"
)

func (a *app) newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick [query]",
		Short: "Choose a directory from history and bookmarks interactively",
		Long: `Open an interactive picker over history entries and bookmark paths.
Typing filters by the last path component; the chosen path is printed to
stdout while the picker draws on stderr, so it works inside $(...).`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runPick,
	}
}

func (a *app) runPick(cmd *cobra.Command, args []string) error {
	candidates, err := a.pickCandidates()
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return errors.New("nothing to pick from: history and bookmarks are empty")
	}

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	path, err := ui.Run(candidates, query, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), path)
	return err
}

// pickCandidates lists history entries followed by bookmark paths not already
// in history. Bookmarks are skipped with a warning if the database is broken.
func (a *app) pickCandidates() ([]string, error) {
	var candidates []string
	err := a.withHistory(func(h store.History) error {
		entries, err := h.List()
		candidates = entries
		return err
	})
	if err != nil {
		return nil, err
	}

	err = a.withDB(func(db *sql.DB) error {
		marks, err := store.GetMarks(db)
		if err != nil {
			return err
		}
		for _, m := range marks {
			if !slices.Contains(candidates, m.Path) {
				candidates = append(candidates, m.Path)
			}
		}
		return nil
	})
	if err != nil {
		a.logger.Warn("bookmarks unavailable", "error", err)
	}

	return candidates, nil
}
