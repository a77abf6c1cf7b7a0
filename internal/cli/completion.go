package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a completion script for bash, zsh or fish.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for floatsheet's commands and flags.

  bash  source <(floatsheet completion bash)
  zsh   floatsheet completion zsh > "${fpath[1]}/_floatsheet"
  fish  floatsheet completion fish > ~/.config/fish/completions/floatsheet.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenBashCompletionV2(w, true)
			}
		},
	}
}
