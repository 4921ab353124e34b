package service

import (
	"context"
	"log"
	"sort"

	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/stats"
)

// RosterService builds the roster view with aggregated season lines
type RosterService struct {
	fetch *Fetcher
	opts  Options
}

// NewRosterService creates a new roster service
func NewRosterService(f *Fetcher, opts Options) *RosterService {
	return &RosterService{fetch: f, opts: opts}
}

// SeasonAggregate folds the box scores of every completed game of a season
// into per-player totals. It also returns how many games were folded.
func (s *RosterService) SeasonAggregate(ctx context.Context, seasonYear int) (stats.Season, int) {
	schedule, err := s.fetch.Schedule(ctx, s.opts.TeamID, seasonYear)
	if err != nil {
		log.Printf("[roster] ⚠️  schedule %d unavailable: %v", seasonYear, err)
		return stats.Aggregate(nil), 0
	}

	completed := espn.Completed(espn.ParseEvents(schedule))
	summaries := s.fetch.Summaries(ctx, eventIDs(completed))

	blocks := make([]stats.StatBlock, 0, len(completed))
	for _, ev := range completed {
		summary, ok := summaries[ev.ID]
		if !ok {
			continue
		}
		if block, ok := espn.PlayerStatBlock(summary, s.opts.TeamID); ok {
			blocks = append(blocks, block)
		}
	}
	return stats.Aggregate(blocks), len(blocks)
}

// Roster groups the season's athletes by position. Season lines come from
// the aggregate first, then the roster's inline stats, then each athlete's
// upstream season stats.
func (s *RosterService) Roster(ctx context.Context, seasonYear int) *RosterView {
	view := &RosterView{
		SeasonYear:  seasonYear,
		SeasonLabel: espn.SeasonLabel(seasonYear),
		Groups:      []PositionGroup{},
	}

	data, err := s.fetch.Roster(ctx, s.opts.TeamID, seasonYear)
	if err != nil {
		log.Printf("[roster] ⚠️  roster %d unavailable: %v", seasonYear, err)
		return view
	}
	athletes := espn.ParseRoster(data)
	if len(athletes) == 0 {
		return view
	}

	season, games := s.SeasonAggregate(ctx, seasonYear)
	view.GamesCompleted = games

	ids := make([]string, 0, len(athletes))
	for _, a := range athletes {
		ids = append(ids, a.ID)
	}
	upstream := s.fetch.AthletesStats(ctx, ids, seasonYear)

	groups := map[string][]PlayerCard{}
	for _, a := range athletes {
		totals, _ := season.Player(a.ID)
		fallback := espn.MergeStats(a.Stats, espn.AthleteSeasonStats(upstream[a.ID]))
		groups[a.Position] = append(groups[a.Position], PlayerCard{
			Athlete: a,
			Season:  stats.ResolveSeasonLine(totals, fallback),
		})
	}

	positions := make([]string, 0, len(groups))
	for p := range groups {
		positions = append(positions, p)
	}
	sort.Strings(positions)
	for _, p := range positions {
		view.Groups = append(view.Groups, PositionGroup{Position: p, Players: groups[p]})
	}

	log.Printf("[roster] ✓ %s: %d athletes, %d box scores aggregated", view.SeasonLabel, len(athletes), games)
	return view
}
