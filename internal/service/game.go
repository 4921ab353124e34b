package service

import (
	"context"
	"log"

	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/payload"
)

// GameService serves a single game
type GameService struct {
	fetch *Fetcher
	opts  Options
}

// NewGameService creates a new game service
func NewGameService(f *Fetcher, opts Options) *GameService {
	return &GameService{fetch: f, opts: opts}
}

// Game reconciles one event from its summary. Games the team does not play
// in, and summaries that cannot be fetched, are reported unavailable.
func (s *GameService) Game(ctx context.Context, eventID string) *GameView {
	summary, err := s.fetch.Summary(ctx, eventID)
	if err != nil {
		log.Printf("[game] ⚠️  summary %s unavailable: %v", eventID, err)
		return &GameView{}
	}

	header := payload.Map(summary, "header")
	ev, ok := espn.ParseEvent(header)
	if !ok {
		return &GameView{}
	}

	res, ok := buildResult(ev, s.opts.TeamID, summary, nil)
	if !ok {
		return &GameView{}
	}
	return &GameView{Available: true, Result: &res}
}
