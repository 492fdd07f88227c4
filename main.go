package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/impostorparty/go-server/internal/history"
	"github.com/impostorparty/go-server/internal/httpserver"
	"github.com/impostorparty/go-server/internal/lobby"
	"github.com/impostorparty/go-server/internal/random"
	"github.com/impostorparty/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}

	// History is best-effort bookkeeping; a broken DB must not stop the game.
	var hist *history.Store
	if dsn := getEnv("HISTORY_DB", "./data/impostor.db"); dsn != "off" {
		var err error
		hist, err = history.Open(dsn)
		if err != nil {
			log.Warn().Err(err).Str("dsn", dsn).Msg("history disabled")
			hist = nil
		}
	}

	src := random.NewCryptoSource()
	svc := lobby.NewService(lobby.NewRegistry(), lobby.NewCodeGenerator(src), lobby.NewRoleAssigner(src, words.List()))
	auth := httpserver.NewAdminAuth(getEnv("ADMIN_PASSWORD", "admin"), os.Getenv("ADMIN_PASSWORD_HASH"))

	srv := httpserver.New(svc, auth, hist)
	port := getEnv("PORT", "3000")
	log.Info().Str("port", port).Int("words", words.Count()).Msg("starting impostor server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
