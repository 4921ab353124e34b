package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/espn"
)

// HistorySeasons is how many seasons back the history view offers
const HistorySeasons = 5

// HistoryService builds season-by-season results
type HistoryService struct {
	fetch *Fetcher
	opts  Options
}

// NewHistoryService creates a new history service
func NewHistoryService(f *Fetcher, opts Options) *HistoryService {
	return &HistoryService{fetch: f, opts: opts}
}

// CurrentStartYear is the start year of the season in progress
func (s *HistoryService) CurrentStartYear() int {
	return espn.SeasonEndYear(s.opts.now()) - 1
}

// Years lists the selectable season start years, newest first
func (s *HistoryService) Years() []int {
	current := s.CurrentStartYear()
	years := make([]int, HistorySeasons)
	for i := range years {
		years[i] = current - i
	}
	return years
}

// ErrSeasonOutOfRange is returned for a start year outside Years()
type ErrSeasonOutOfRange struct {
	Year, Oldest, Newest int
}

func (e *ErrSeasonOutOfRange) Error() string {
	return fmt.Sprintf("season %d out of range %d-%d", e.Year, e.Oldest, e.Newest)
}

// Season reconciles every completed game of the season starting in startYear
func (s *HistoryService) Season(ctx context.Context, startYear int) (*HistoryView, error) {
	years := s.Years()
	if startYear > years[0] || startYear < years[len(years)-1] {
		return nil, &ErrSeasonOutOfRange{Year: startYear, Oldest: years[len(years)-1], Newest: years[0]}
	}

	seasonYear := startYear + 1
	view := &HistoryView{
		StartYear:   startYear,
		SeasonLabel: espn.SeasonLabel(seasonYear),
		Years:       years,
		Results:     []GameResult{},
		Upcoming:    []GameCard{},
	}

	schedule, err := s.fetch.Schedule(ctx, s.opts.TeamID, seasonYear)
	if err != nil {
		log.Printf("[history] ⚠️  schedule %d unavailable: %v", seasonYear, err)
		return view, nil
	}

	events := espn.FilterSeason(espn.ParseEvents(schedule), seasonYear)
	completed := espn.Completed(events)
	view.Upcoming = gameCards(espn.Remaining(events))

	summaries := s.fetch.Summaries(ctx, eventIDs(completed))
	fallback := s.scoreboardFallback(ctx, completed, summaries)

	for _, ev := range completed {
		res, ok := buildResult(ev, s.opts.TeamID, summaries[ev.ID], fallback[ev.ID])
		if !ok {
			continue
		}
		view.Results = append(view.Results, res)
	}
	mostRecentFirst(view.Results)
	view.Wins, view.Losses, view.WinPct = record(view.Results)

	log.Printf("[history] ✓ %s: %d results (%d-%d), %d upcoming",
		view.SeasonLabel, len(view.Results), view.Wins, view.Losses, len(view.Upcoming))
	return view, nil
}

// scoreboardFallback loads date scoreboards for the games whose summary has
// no player rows for the team and indexes their athletes by event
func (s *HistoryService) scoreboardFallback(ctx context.Context, completed []espn.ScheduleEvent, summaries map[string]map[string]interface{}) map[string]map[string][]map[string]interface{} {
	var dates []time.Time
	for _, ev := range completed {
		if ev.Date.IsZero() {
			continue
		}
		if block, ok := espn.PlayerStatBlock(summaries[ev.ID], s.opts.TeamID); ok && len(block.Athletes) > 0 {
			continue
		}
		dates = append(dates, ev.Date)
	}

	out := map[string]map[string][]map[string]interface{}{}
	if len(dates) == 0 {
		return out
	}
	for _, board := range s.fetch.Scoreboards(ctx, dates) {
		for eventID, teams := range espn.ScoreboardAthletes(board) {
			out[eventID] = teams
		}
	}
	return out
}
