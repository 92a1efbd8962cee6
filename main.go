package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	update := flag.Bool("update", false, "overwrite all commands, regardless of if they are present or not")
	cfgPath := flag.String("config", "config.json", "path of the configuration file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	if cfg.Token == "" {
		log.Fatal().Msg("no token provided")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	s := state.New("Bot " + cfg.Token)
	b := &botState{
		cfg:     cfg,
		cfgPath: *cfgPath,
		state:   s,
		client:  &http.Client{Timeout: loadTimeout},
		library: source.NewLibrary(),
	}

	s.AddHandler(b.OnCommand)
	s.AddIntents(gateway.IntentGuilds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Open(ctx); err != nil {
		log.Fatal().Err(errors.Wrap(err, "could not open session")).Send()
	}
	defer s.Close()

	log.Info().Msg("Gateway connection established.")
	me, err := s.Me()
	if err != nil {
		log.Error().Err(err).Msg("could not get me")
		return
	}
	b.appID = discord.AppID(me.ID)

	log.Info().Str("user", me.Tag()).Msg("logged in")

	if err := loadCommands(s, b.appID, *update); err != nil {
		log.Error().Err(err).Msg("could not load commands")
		return
	}

	b.loadDocuments(ctx)
	go b.refreshDocuments(ctx, time.Duration(cfg.Refresh))
	go b.gcInteractionData(ctx)

	<-ctx.Done()
	log.Info().Msg("shutting down")
}
