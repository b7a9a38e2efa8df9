package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/ui"
)

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show a player's records for every game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rt, err := openRuntime(ctx, flags)
			if err != nil {
				return err
			}
			defer rt.close()

			all, err := store.AllStats(ctx, rt.store, flags.player)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Stats for "+flags.player))
			fmt.Fprintln(out, "")
			for _, g := range stats.Games {
				s := all[g]
				fmt.Fprintln(out, ui.H2.Render(gameTitle(g)))
				fmt.Fprintf(out, "- %s  %s  %s\n",
					ui.LabelValue("Played", s.Played),
					ui.LabelValue("Won", s.Won),
					ui.LabelValue("Win %", s.WinRate()))
				fmt.Fprintf(out, "- %s  %s\n",
					ui.LabelValue("Streak", s.CurrentStreak),
					ui.LabelValue("Max streak", s.MaxStreak))
				switch g {
				case stats.Wordle:
					fmt.Fprintf(out, "- %s\n", ui.LabelValue("Avg guesses", fmt.Sprintf("%.2f", s.AverageGuesses)))
				case stats.Runner:
					fmt.Fprintf(out, "- %s\n", ui.LabelValue("High score", s.HighScore/10))
				}
				fmt.Fprintln(out, "")
			}

			p, err := rt.store.GetPreferences(ctx, flags.player)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("theme=%s sound=%t language=%s", p.Theme, p.SoundEnabled, p.Language)))
			return nil
		},
	}
}

func gameTitle(g stats.GameID) string {
	switch g {
	case stats.Wordle:
		return ui.IconWordle + " Wordle"
	case stats.Hangman:
		return ui.IconHangman + " Hangman"
	case stats.Runner:
		return ui.IconRunner + " Dino Runner"
	}
	return string(g)
}
