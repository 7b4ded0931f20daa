package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montrey/cle/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get or set configuration values",
		Long: `Get or set cle configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/cle/config.yaml (XDG compliant).

Examples:
  cle config                          # List all keys
  cle config history.backend          # Get history.backend value
  cle config history.backend sqlite   # Keep history in the database
  cle config search.skip_hidden true`,
		Args: cobra.MaximumNArgs(2),
		RunE: a.runConfig,
	}
}

func (a *app) runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch len(args) {
	case 0:
		for _, key := range config.ListKeys() {
			value, err := a.cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s = %q\n", key, value)
		}
		fmt.Fprintf(out, "\nConfig file: %s\n", a.configPath)
		return nil

	case 1:
		value, err := a.cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	}

	key, value := args[0], args[1]
	if err := a.cfg.Set(key, value); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := a.cfg.SaveToFile(a.configPath); err != nil {
		return err
	}

	a.logger.Debug("config saved", "key", key, "path", a.configPath)
	fmt.Fprintf(out, "%s = %q\n", key, value)
	return nil
}
