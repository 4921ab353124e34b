package service

import (
	"context"
	"log"

	"github.com/fortuna/courtside/internal/espn"
)

// TeamService serves team info and season schedules
type TeamService struct {
	fetch *Fetcher
	opts  Options
}

// NewTeamService creates a new team service
func NewTeamService(f *Fetcher, opts Options) *TeamService {
	return &TeamService{fetch: f, opts: opts}
}

// CurrentSeason is the end year of the season in progress
func (s *TeamService) CurrentSeason() int {
	return espn.SeasonEndYear(s.opts.now())
}

// Team returns the team summary for the current season
func (s *TeamService) Team(ctx context.Context) *TeamView {
	season := s.CurrentSeason()
	view := &TeamView{
		SeasonYear:  season,
		SeasonLabel: espn.SeasonLabel(season),
	}

	data, err := s.fetch.Team(ctx, s.opts.TeamID, season)
	if err != nil {
		log.Printf("[team] ⚠️  team %s unavailable: %v", s.opts.TeamID, err)
		return view
	}
	view.Team = espn.ParseTeam(data)
	view.Available = view.Team.ID != ""
	return view
}

// Schedule returns every game of a season, with broadcasts filled in from
// the secondary schedule where the team's own lacks them
func (s *TeamService) Schedule(ctx context.Context, seasonYear int) *ScheduleView {
	view := &ScheduleView{
		SeasonYear:  seasonYear,
		SeasonLabel: espn.SeasonLabel(seasonYear),
		Games:       []GameCard{},
	}

	events, err := s.seasonEvents(ctx, seasonYear)
	if err != nil {
		log.Printf("[team] ⚠️  schedule %d unavailable: %v", seasonYear, err)
		return view
	}
	view.Games = gameCards(events)
	return view
}

// seasonEvents loads the team's schedule and backfills broadcasts from the
// secondary team's schedule of the same season
func (s *TeamService) seasonEvents(ctx context.Context, seasonYear int) ([]espn.ScheduleEvent, error) {
	data, err := s.fetch.Schedule(ctx, s.opts.TeamID, seasonYear)
	if err != nil {
		return nil, err
	}
	events := espn.FilterSeason(espn.ParseEvents(data), seasonYear)
	return s.backfill(ctx, events, seasonYear), nil
}

func (s *TeamService) backfill(ctx context.Context, events []espn.ScheduleEvent, seasonYear int) []espn.ScheduleEvent {
	if s.opts.BroadcastTeamID == "" || s.opts.BroadcastTeamID == s.opts.TeamID {
		return events
	}
	missing := false
	for _, ev := range events {
		if len(ev.Broadcasts) == 0 {
			missing = true
			break
		}
	}
	if !missing {
		return events
	}

	alt, err := s.fetch.Schedule(ctx, s.opts.BroadcastTeamID, seasonYear)
	if err != nil {
		log.Printf("[team] ⚠️  broadcast schedule %s unavailable: %v", s.opts.BroadcastTeamID, err)
		return events
	}
	return espn.BackfillBroadcasts(events, espn.ParseEvents(alt))
}
