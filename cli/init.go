package cli

import (
	"embed"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed shell/cle.bash
//go:embed shell/cle.zsh
//go:embed shell/cle.fish
var shellScripts embed.FS

func (a *app) newInitCmd() *cobra.Command {
	var funcName string

	cmd := &cobra.Command{
		Use:   "init <shell>",
		Short: "Output shell integration script",
		Long: `Output the shell integration script for your shell. It defines a
function (default "ce") that changes directory through "cle cd" and records
visited directories in the history, plus "<name>p" for the interactive picker.

Add this to your shell configuration file:

  # For Bash (~/.bashrc):
  eval "$(cle init bash)"

  # For Zsh (~/.zshrc):
  eval "$(cle init zsh)"

  # For Fish (~/.config/fish/config.fish):
  cle init fish | source`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := renderScript(args[0], funcName)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}

	cmd.Flags().StringVar(&funcName, "cmd", "ce", "name of the shell function to define")
	return cmd
}

func renderScript(shell, funcName string) (string, error) {
	var filename string
	switch shell {
	case "bash":
		filename = "shell/cle.bash"
	case "zsh":
		filename = "shell/cle.zsh"
	case "fish":
		filename = "shell/cle.fish"
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}

	if funcName == "" || strings.ContainsAny(funcName, " \t\n;&|()<>$`'\"\\") {
		return "", fmt.Errorf("invalid function name: %q", funcName)
	}

	content, err := shellScripts.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read shell script: %w", err)
	}

	return strings.ReplaceAll(string(content), "{{FUNC}}", funcName), nil
}
