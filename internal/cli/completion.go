package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate a shell completion script for %[1]s and write it to stdout.

Bash:
  $ source <(%[1]s completion bash)

  # Or install it permanently:
  $ %[1]s completion bash > /etc/bash_completion.d/%[1]s                       # Linux
  $ %[1]s completion bash > $(brew --prefix)/etc/bash_completion.d/%[1]s      # macOS

Zsh:
  # Enable completion support once if you have not already:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"
  # Takes effect in new shells.

Fish:
  $ %[1]s completion fish | source

  # Or install it permanently:
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression

  # Or save it and source it from your PowerShell profile:
  PS> %[1]s completion powershell > %[1]s.ps1
`, appName),
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
