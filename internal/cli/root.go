// internal/cli/root.go
//
// gamehub command tree.
//   serve                 HTTP API
//   play wordle|hangman|runner
//   stats                 a player's records
//   daily [date]          today's (or date's) puzzle number
//   words                 word-list counts

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/gamehub/internal/ui"
)

const Version = "0.3.0"

type rootFlags struct {
	configPath string
	player     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "gamehub",
		Short:         "GameHub: Wordle, Hangman and Dino Runner",
		Long:          "GameHub hosts three casual games behind an HTTP API and a terminal client, with per-player stats and preferences.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (yaml, toml or json)")
	cmd.PersistentFlags().StringVar(&flags.player, "player", "local", "profile id used by terminal commands")

	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.AddCommand(
		newServeCmd(flags),
		newPlayCmd(flags),
		newStatsCmd(flags),
		newDailyCmd(flags),
		newWordsCmd(flags),
	)
	return cmd
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
