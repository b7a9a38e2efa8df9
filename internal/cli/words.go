package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/gamehub/internal/ui"
)

func newWordsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Show word-list sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			src, err := loadWords(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			a, g := src.Dictionary.Stats()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Word lists"))
			fmt.Fprintln(out, ui.LabelValue("Wordle answers", a))
			fmt.Fprintln(out, ui.LabelValue("Wordle accepted", g))
			fmt.Fprintln(out, ui.H2.Render("Hangman categories"))
			for _, name := range src.Categories.Names() {
				list, _ := src.Categories.Words(name)
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(name), ui.Muted.Render(fmt.Sprintf("(%d)", len(list))))
			}
			return nil
		},
	}
}
