package cli

import (
	"context"
	"io"
	"math/rand/v2"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gamehub/internal/config"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/words"
)

// setupLogging applies the configured level and picks console or JSON output.
func setupLogging(level string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// runtime is everything a command needs after config is loaded.
type runtime struct {
	cfg   *config.Config
	store store.Store
	words *words.Source
}

func (r *runtime) close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
}

func (r *runtime) rand() *rand.Rand {
	seed := r.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel, os.Stderr)
	return cfg, nil
}

func loadWords(cfg *config.Config) (*words.Source, error) {
	return words.Load(words.Files{
		Answers:    cfg.Words.AnswersFile,
		Allowed:    cfg.Words.AllowedFile,
		Categories: cfg.Words.CategoriesFile,
	})
}

// openRuntime loads config, word lists and the configured store.
func openRuntime(ctx context.Context, flags *rootFlags) (*runtime, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	src, err := loadWords(cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, store.Options{
		Backend: cfg.Store.Backend,
		Driver:  cfg.Store.Driver,
		DSN:     cfg.Store.DSN,
		Redis: store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("backend", cfg.Store.Backend).Msg("store opened")
	return &runtime{cfg: cfg, store: st, words: src}, nil
}
