package service

import (
	"slices"
	"time"

	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/stats"
)

// Options shared by the dashboard services
type Options struct {
	TeamID          string
	BroadcastTeamID string
	Now             func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// buildResult reconciles one event for teamID. summary and scoreboardRows
// may be nil; the result then rests on the schedule alone. It reports false
// when the event does not have both sides.
func buildResult(ev espn.ScheduleEvent, teamID string, summary map[string]interface{}, scoreboardRows map[string][]map[string]interface{}) (GameResult, bool) {
	team, ok := ev.Competitor(teamID)
	if !ok {
		return GameResult{}, false
	}
	opp, ok := ev.Opponent(teamID)
	if !ok {
		return GameResult{}, false
	}

	teamSide := stats.Side{Winner: team.Winner, Schedule: team.Score}
	oppSide := stats.Side{Winner: opp.Winner, Schedule: opp.Score}

	res := GameResult{
		Game:     newGameCard(ev),
		Opponent: opp.Team,
		HomeAway: team.HomeAway,
	}

	boxTeams := espn.BoxScoreTeams(summary)
	if box, ok := espn.FindBoxScoreTeam(boxTeams, teamID); ok {
		teamSide.BoxScore = box.Score
		res.TeamStats = &box.Stats
	}
	if box, ok := espn.FindBoxScoreTeam(boxTeams, opp.Team.ID); ok {
		oppSide.BoxScore = box.Score
		res.OpponentStats = &box.Stats
	}

	outcome := stats.DetermineOutcome(teamSide, oppSide)
	res.Outcome = outcome.Outcome
	res.Label = outcome.Outcome.Label()
	res.HasScores = outcome.HasScores
	res.TeamScore = outcome.TeamScore
	res.OpponentScore = outcome.OpponentScore

	res.Players = playerLines(summary, scoreboardRows, teamID)
	res.OpponentPlayers = playerLines(summary, scoreboardRows, opp.Team.ID)
	return res, true
}

// playerLines prefers the summary box score and falls back to the athlete
// rows of the date's scoreboard
func playerLines(summary map[string]interface{}, scoreboardRows map[string][]map[string]interface{}, teamID string) []stats.PlayerLine {
	if block, ok := espn.PlayerStatBlock(summary, teamID); ok {
		if lines := stats.CollectPlayers(block); len(lines) > 0 {
			return lines
		}
	}
	return stats.CollectPlayers(stats.StatBlock{TeamID: teamID, Athletes: scoreboardRows[teamID]})
}

func eventIDs(events []espn.ScheduleEvent) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids
}

// record counts decided results; unknown outcomes are left out
func record(results []GameResult) (wins, losses int, pct *float64) {
	for _, r := range results {
		switch r.Outcome {
		case stats.OutcomeWin:
			wins++
		case stats.OutcomeLoss:
			losses++
		}
	}
	if decided := wins + losses; decided > 0 {
		v := float64(wins) / float64(decided) * 100
		pct = &v
	}
	return wins, losses, pct
}

func mostRecentFirst(results []GameResult) {
	slices.SortStableFunc(results, func(a, b GameResult) int {
		return b.Game.Date.Compare(a.Game.Date)
	})
}
