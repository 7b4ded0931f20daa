package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montrey/cle/resolve"
	"github.com/montrey/cle/store"
)

func (a *app) newMarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Manage named directory bookmarks",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> [path]",
			Short: "Bookmark a directory (default: working directory)",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  a.runMarkAdd,
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Delete a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runMarkRemove,
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List bookmarks",
			Args:  cobra.NoArgs,
			RunE:  a.runMarkList,
		},
		&cobra.Command{
			Use:   "go <query>",
			Short: "Print the path of the bookmark whose name is closest to query",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runMarkGo,
		},
	)
	return cmd
}

func (a *app) withDB(fn func(*sql.DB) error) error {
	db, err := store.InitDB(a.paths.DatabaseFile())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func (a *app) runMarkAdd(cmd *cobra.Command, args []string) error {
	path, err := absDir(args[1:])
	if err != nil {
		return err
	}
	return a.withDB(func(db *sql.DB) error {
		if err := store.AddMark(db, args[0], path); err != nil {
			return err
		}
		a.logger.Debug("mark add", "name", args[0], "path", path)
		return nil
	})
}

func (a *app) runMarkRemove(cmd *cobra.Command, args []string) error {
	return a.withDB(func(db *sql.DB) error {
		removed, err := store.RemoveMark(db, args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no such mark: %s", args[0])
		}
		return nil
	})
}

func (a *app) runMarkList(cmd *cobra.Command, _ []string) error {
	return a.withDB(func(db *sql.DB) error {
		marks, err := store.GetMarks(db)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range marks {
			fmt.Fprintf(out, "%s\t%s\n", m.Name, m.Path)
		}
		return nil
	})
}

func (a *app) runMarkGo(cmd *cobra.Command, args []string) error {
	return a.withDB(func(db *sql.DB) error {
		marks, err := store.GetMarks(db)
		if err != nil {
			return err
		}
		m, ok := store.MatchMark(marks, args[0])
		if !ok {
			return &resolve.NoMatchError{Query: args[0], Path: "marks"}
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), m.Path)
		return err
	})
}
