package service

import "context"

// Dashboard bundles the views served over REST and WebSocket
type Dashboard struct {
	team    *TeamService
	live    *LiveService
	roster  *RosterService
	history *HistoryService
	game    *GameService
}

// NewDashboard wires every view to one fetcher
func NewDashboard(f *Fetcher, opts Options) *Dashboard {
	return &Dashboard{
		team:    NewTeamService(f, opts),
		live:    NewLiveService(f, opts),
		roster:  NewRosterService(f, opts),
		history: NewHistoryService(f, opts),
		game:    NewGameService(f, opts),
	}
}

func (d *Dashboard) CurrentSeason() int    { return d.team.CurrentSeason() }
func (d *Dashboard) CurrentStartYear() int { return d.history.CurrentStartYear() }

func (d *Dashboard) Team(ctx context.Context) *TeamView {
	return d.team.Team(ctx)
}

func (d *Dashboard) Live(ctx context.Context) *LiveView {
	return d.live.Snapshot(ctx)
}

func (d *Dashboard) Schedule(ctx context.Context, seasonYear int) *ScheduleView {
	return d.team.Schedule(ctx, seasonYear)
}

func (d *Dashboard) Roster(ctx context.Context, seasonYear int) *RosterView {
	return d.roster.Roster(ctx, seasonYear)
}

func (d *Dashboard) History(ctx context.Context, startYear int) (*HistoryView, error) {
	return d.history.Season(ctx, startYear)
}

func (d *Dashboard) Game(ctx context.Context, eventID string) *GameView {
	return d.game.Game(ctx, eventID)
}
