package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/montrey/cle/resolve"
	"github.com/montrey/cle/store"
)

func (a *app) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage visited directory history",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add [path]",
			Short: "Record a directory (default: working directory)",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runHistoryAdd,
		},
		&cobra.Command{
			Use:   "rm <path>",
			Short: "Forget a directory",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runHistoryRemove,
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List recorded directories",
			Args:  cobra.NoArgs,
			RunE:  a.runHistoryList,
		},
		&cobra.Command{
			Use:   "match <query>",
			Short: "Print the recorded directory whose name is closest to query",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runHistoryMatch,
		},
	)
	return cmd
}

// withHistory opens the history backend for the duration of fn.
func (a *app) withHistory(fn func(store.History) error) error {
	h, closeFn, err := a.openHistory()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(h)
}

func (a *app) runHistoryAdd(cmd *cobra.Command, args []string) error {
	path, err := absDir(args)
	if err != nil {
		return err
	}
	return a.withHistory(func(h store.History) error {
		if err := h.Add(path); err != nil {
			return err
		}
		a.logger.Debug("history add", "path", path)
		return nil
	})
}

func (a *app) runHistoryRemove(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	return a.withHistory(func(h store.History) error {
		removed, err := h.Remove(path)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("not in history: %s", path)
		}
		return nil
	})
}

func (a *app) runHistoryList(cmd *cobra.Command, _ []string) error {
	return a.withHistory(func(h store.History) error {
		entries, err := h.List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintln(out, e)
		}
		return nil
	})
}

func (a *app) runHistoryMatch(cmd *cobra.Command, args []string) error {
	return a.withHistory(func(h store.History) error {
		hit, ok, err := store.Match(h, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return &resolve.NoMatchError{Query: args[0], Path: "history"}
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), hit)
		return err
	})
}

// absDir returns the absolute form of args[0], or the working directory when
// args is empty. The result must be an existing directory.
func absDir(args []string) (string, error) {
	var path string
	var err error
	if len(args) == 0 {
		path, err = os.Getwd()
	} else {
		path, err = filepath.Abs(args[0])
	}
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &resolve.FilesystemError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", path)
	}
	return path, nil
}
