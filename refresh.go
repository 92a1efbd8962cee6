package main

import (
	"context"
	"time"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/rs/zerolog/log"
)

// loadDocuments (re)loads every configured document. Documents that fail
// to load keep their previous version and are reported in the result.
func (b *botState) loadDocuments(ctx context.Context) (loaded int, failed map[string]error) {
	b.mu.Lock()
	locations := append([]string(nil), b.cfg.Documents...)
	b.mu.Unlock()

	failed = map[string]error{}
	for _, loc := range locations {
		d, err := source.Open(ctx, b.client, loc)
		if err != nil {
			log.Warn().Err(err).Str("location", loc).Msg("could not load document")
			failed[loc] = err
			continue
		}
		if old := b.library.Add(d); old != nil && old.Location != d.Location {
			log.Warn().Str("model", d.Name).Str("old", old.Location).Str("new", d.Location).
				Msg("model name is used by two documents")
		}
		loaded++
	}
	log.Info().Int("loaded", loaded).Int("failed", len(failed)).Msg("loaded documents")
	return loaded, failed
}

func (b *botState) refreshDocuments(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.loadDocuments(ctx)
		}
	}
}
