package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgraph/pkg/hierarchy"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for pathgraph.

  bash        source <(pathgraph completion bash)
  zsh         pathgraph completion zsh > "${fpath[1]}/_pathgraph"
  fish        pathgraph completion fish > ~/.config/fish/completions/pathgraph.fish
  powershell  pathgraph completion powershell | Out-String | Invoke-Expression

Tier ids complete for --expand once a hierarchy file is on the command line.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}

// completeTierIDs completes --expand values from the hierarchy named by the
// first positional argument.
func completeTierIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	h, err := hierarchy.Load(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, len(h.Tiers))
	for _, t := range h.Tiers {
		ids = append(ids, t.ID+"\t"+t.Label)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
