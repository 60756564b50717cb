package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions.
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for puzzled.

To load completions:

Bash:
  $ source <(puzzled completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ puzzled completion bash > /etc/bash_completion.d/puzzled
  # macOS:
  $ puzzled completion bash > $(brew --prefix)/etc/bash_completion.d/puzzled

Zsh:
  # To load completions for each session, execute once:
  $ puzzled completion zsh > "${fpath[1]}/_puzzled"

Fish:
  $ puzzled completion fish | source

  # To load completions for each session, execute once:
  $ puzzled completion fish > ~/.config/fish/completions/puzzled.fish

PowerShell:
  PS> puzzled completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
