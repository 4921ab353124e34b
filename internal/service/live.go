package service

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/fortuna/courtside/internal/espn"
)

const (
	recentWindow = 24 * time.Hour
	recentGamesN = 3
)

// LiveService builds live-score snapshots
type LiveService struct {
	fetch *Fetcher
	teams *TeamService
	opts  Options
}

// NewLiveService creates a new live service
func NewLiveService(f *Fetcher, opts Options) *LiveService {
	return &LiveService{fetch: f, teams: NewTeamService(f, opts), opts: opts}
}

// Snapshot picks what to show right now: the team's games on today's
// scoreboard, else today's scheduled games, else the next one.
func (s *LiveService) Snapshot(ctx context.Context) *LiveView {
	now := s.opts.now()
	view := &LiveView{
		TeamID:    s.opts.TeamID,
		UpdatedAt: now,
		Source:    LiveSourceNone,
		Games:     []LiveGame{},
	}

	games, source := s.scoreboardGames(ctx)
	if len(games) == 0 {
		games, source = s.scheduledGames(ctx, now)
	}
	if len(games) == 0 {
		return view
	}

	summaries := s.fetch.Summaries(ctx, eventIDs(games))
	for _, ev := range games {
		game := LiveGame{GameCard: newGameCard(ev)}
		boxTeams := espn.BoxScoreTeams(summaries[ev.ID])
		if game.Home != nil {
			if box, ok := espn.FindBoxScoreTeam(boxTeams, game.Home.ID); ok {
				game.HomeStats = &box.Stats
			}
		}
		if game.Away != nil {
			if box, ok := espn.FindBoxScoreTeam(boxTeams, game.Away.ID); ok {
				game.AwayStats = &box.Stats
			}
		}
		view.Games = append(view.Games, game)
	}
	view.Source = source
	return view
}

func (s *LiveService) scoreboardGames(ctx context.Context) ([]espn.ScheduleEvent, string) {
	board, err := s.fetch.LiveScoreboard(ctx)
	if err != nil {
		log.Printf("[live] ⚠️  scoreboard unavailable: %v", err)
		return nil, LiveSourceNone
	}

	var games []espn.ScheduleEvent
	for _, ev := range espn.ParseEvents(board) {
		if ev.Involves(s.opts.TeamID) {
			games = append(games, ev)
		}
	}
	if len(games) == 0 {
		return nil, LiveSourceNone
	}
	return s.teams.backfill(ctx, games, espn.SeasonEndYear(s.opts.now())), LiveSourceScoreboard
}

func (s *LiveService) scheduledGames(ctx context.Context, now time.Time) ([]espn.ScheduleEvent, string) {
	season := espn.SeasonEndYear(now)
	data, err := s.fetch.Schedule(ctx, s.opts.TeamID, season)
	if err != nil {
		log.Printf("[live] ⚠️  schedule %d unavailable: %v", season, err)
		return nil, LiveSourceNone
	}
	events := s.teams.backfill(ctx, espn.ParseEvents(data), season)
	upcoming := espn.Upcoming(espn.FilterSeason(events, season))

	var today []espn.ScheduleEvent
	y, m, d := now.Date()
	for _, ev := range upcoming {
		ey, em, ed := ev.Date.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			today = append(today, ev)
		}
	}

	switch {
	case len(today) > 0:
		return today, LiveSourceToday
	case len(upcoming) > 0:
		return upcoming[:1], LiveSourceNext
	case len(events) > 0:
		return recentGames(events, now), LiveSourceRecent
	}
	return nil, LiveSourceNone
}

// recentGames is the last resort when nothing upcoming is left: the first
// games from the past day onward, or else the first game of the schedule
func recentGames(events []espn.ScheduleEvent, now time.Time) []espn.ScheduleEvent {
	var recent []espn.ScheduleEvent
	for _, ev := range events {
		if !ev.Date.Before(now.Add(-recentWindow)) {
			recent = append(recent, ev)
		}
	}
	if len(recent) == 0 {
		return events[:1]
	}
	slices.SortStableFunc(recent, func(a, b espn.ScheduleEvent) int {
		return a.Date.Compare(b.Date)
	})
	return recent[:min(len(recent), recentGamesN)]
}
