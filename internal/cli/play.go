package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/gamehub/internal/hangman"
	"github.com/robalobadob/gamehub/internal/tui"
)

func newPlayCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
	}

	var free bool
	wordleCmd := &cobra.Command{
		Use:   "wordle",
		Short: "Today's Wordle (or --free for a random word)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, cleanup, err := openEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.RunWordle(ctx, env, free, cmd.OutOrStdout())
		},
	}
	wordleCmd.Flags().BoolVar(&free, "free", false, "random word instead of the daily puzzle")

	var category, difficulty string
	hangmanCmd := &cobra.Command{
		Use:   "hangman",
		Short: "Guess the word letter by letter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := hangman.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			ctx := context.Background()
			env, cleanup, err := openEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.RunHangman(ctx, env, category, d, cmd.OutOrStdout())
		},
	}
	hangmanCmd.Flags().StringVar(&category, "category", "", "word category (default: any)")
	hangmanCmd.Flags().StringVar(&difficulty, "difficulty", "medium", "easy | medium | hard")

	runnerCmd := &cobra.Command{
		Use:     "runner",
		Aliases: []string{"dino"},
		Short:   "Jump the obstacles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, cleanup, err := openEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.RunRunner(ctx, env, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(wordleCmd, hangmanCmd, runnerCmd)
	return cmd
}

func openEnv(ctx context.Context, flags *rootFlags) (tui.Env, func(), error) {
	rt, err := openRuntime(ctx, flags)
	if err != nil {
		return tui.Env{}, nil, err
	}
	env := tui.Env{
		Store:  rt.store,
		Player: flags.player,
		Words:  rt.words,
		Rand:   rt.rand(),
		Now:    time.Now,
		Tick:   rt.cfg.Runner.Tick,
	}
	return env, rt.close, nil
}
