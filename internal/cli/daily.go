package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/gamehub/internal/daily"
	"github.com/robalobadob/gamehub/internal/ui"
)

func newDailyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "daily [YYYY-MM-DD]",
		Short: "Show the daily puzzle number for a date (default today, UTC)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			src, err := loadWords(cfg)
			if err != nil {
				return err
			}
			key := daily.DateKey(time.Now())
			if len(args) == 1 {
				key = args[0]
			}
			n := len(src.Dictionary.Answers())
			idx, err := daily.Index(key, n)
			if err != nil {
				return fmt.Errorf("bad date %q: %w", key, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCal, "Daily Wordle"))
			fmt.Fprintln(out, ui.LabelValue("Date", key))
			fmt.Fprintln(out, ui.LabelValue("Puzzle", fmt.Sprintf("#%d of %d", idx, n)))
			return nil
		},
	}
}
