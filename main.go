package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raweeng/Nulldle/internal/dict"
	"github.com/raweeng/Nulldle/internal/httpserver"
	"github.com/raweeng/Nulldle/internal/kv"
	"github.com/raweeng/Nulldle/internal/stats"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	d, err := loadDictionary(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", d.Len()).Msg("dictionary loaded")

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open kv store")
	}

	srv := httpserver.New(d, stats.New(store), store, httpserver.Config{
		JWTSecret:     cfg.JWTSecret,
		JWTExpiryDays: cfg.JWTExpiryDays,
		ClientOrigin:  cfg.ClientOrigin,
		RateRPS:       cfg.RateRPS,
		RateBurst:     cfg.RateBurst,
		Production:    cfg.Production,
	})
	log.Info().Str("addr", cfg.Addr).Msg("starting nulldle server")
	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadDictionary loads the configured word list, falling back to the
// embedded defaults when no file is configured.
func loadDictionary(cfg Config) (*dict.Dictionary, error) {
	if cfg.DictFile != "" {
		return dict.LoadFile(cfg.DictFile)
	}
	return dict.Default()
}

// openStore opens the durable kv store. An empty DB_PATH selects the
// in-memory store (stats are then lost on restart).
func openStore(cfg Config) (kv.Store, error) {
	if cfg.DBPath == "" {
		log.Warn().Msg("DB_PATH empty, using in-memory store")
		return kv.NewMemory(), nil
	}
	return kv.OpenSQLite(cfg.DBPath)
}
