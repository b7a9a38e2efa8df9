package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/gamehub/internal/httpserver"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rt, err := openRuntime(ctx, flags)
			if err != nil {
				return err
			}
			defer rt.close()

			a, g := rt.words.Dictionary.Stats()
			log.Info().Int("answers", a).Int("allowed", g).
				Int("categories", len(rt.words.Categories.Names())).Msg("word lists loaded")

			cfg := rt.cfg
			srv := httpserver.New(rt.store, rt.words, httpserver.Options{
				ClientOrigin:  cfg.ClientOrigin,
				JWTSecret:     cfg.JWTSecret,
				JWTExpires:    time.Duration(cfg.JWTExpiresDays) * 24 * time.Hour,
				CookieName:    cfg.CookieName,
				SecureCookies: cfg.SecureCookies,
				RunnerTick:    cfg.Runner.Tick,
				Seed:          cfg.Seed,
			})
			log.Info().Int("port", cfg.Port).Str("store", cfg.Store.Backend).Msg("starting gamehub server")
			return srv.Start(cfg.Addr())
		},
	}
}
