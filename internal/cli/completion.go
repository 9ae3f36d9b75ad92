package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/layout"
	"github.com/matzehuels/stakemap/pkg/render"
)

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a completion script for your shell. Completions cover commands,
flags and the values of --mode, --layout and --format.

  bash        source <(stakemap completion bash)
  zsh         stakemap completion zsh > "${fpath[1]}/_stakemap"
  fish        stakemap completion fish > ~/.config/fish/completions/stakemap.fish
  powershell  stakemap completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeValues returns a flag completion function offering a fixed list.
func completeValues[T ~string](values ...T) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func registerViewCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("mode", completeValues(explore.ViewOverlap, explore.ViewExplicit))
	_ = cmd.RegisterFlagCompletionFunc("layout", completeValues(layout.Modes...))
}

func registerFormatCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(render.FormatPNG, render.FormatSVG, render.FormatDOT))
}
