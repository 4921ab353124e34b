package espn

import (
	"github.com/fortuna/courtside/internal/payload"
	"github.com/fortuna/courtside/internal/stats"
)

// BoxScoreTeam is one team's entry in a game summary box score
type BoxScoreTeam struct {
	TeamID string
	Score  stats.Score
	Stats  stats.TeamStatLine
}

// BoxScoreTeams reads boxscore.teams from a game summary. Box-score teams
// rarely carry a score, so it is taken from the header competitor of the
// same team when missing.
func BoxScoreTeams(summary map[string]interface{}) []BoxScoreTeam {
	headerScores := map[string]interface{}{}
	header := payload.First(payload.Map(summary, "header"), "competitions")
	for _, c := range payload.Maps(header, "competitors") {
		id := payload.ID(c, "id")
		if id == "" {
			id = payload.ID(payload.Map(c, "team"), "id")
		}
		if id != "" {
			headerScores[id] = c["score"]
		}
	}

	teams := payload.Maps(payload.Map(summary, "boxscore"), "teams")
	out := make([]BoxScoreTeam, 0, len(teams))
	for _, t := range teams {
		id := payload.ID(payload.Map(t, "team"), "id")
		raw, ok := t["score"]
		if !ok || raw == nil {
			raw = headerScores[id]
		}
		out = append(out, BoxScoreTeam{
			TeamID: id,
			Score:  stats.ParseScore(raw),
			Stats:  stats.TeamStats(payload.Array(t, "statistics")),
		})
	}
	return out
}

// FindBoxScoreTeam picks teamID out of BoxScoreTeams
func FindBoxScoreTeam(teams []BoxScoreTeam, teamID string) (BoxScoreTeam, bool) {
	for _, t := range teams {
		if t.TeamID == teamID {
			return t, true
		}
	}
	return BoxScoreTeam{}, false
}

// PlayerStatBlock reads one team's athlete rows from a game summary.
// Positional stat arrays are described by statistics[0].keys, or by the
// short labels when keys are missing.
func PlayerStatBlock(summary map[string]interface{}, teamID string) (stats.StatBlock, bool) {
	for _, container := range payload.Maps(payload.Map(summary, "boxscore"), "players") {
		if payload.ID(payload.Map(container, "team"), "id") != teamID {
			continue
		}
		category := payload.First(container, "statistics")

		keys := stringList(payload.Array(category, "keys"))
		if len(keys) == 0 {
			keys = stringList(payload.Array(category, "labels"))
		}

		rows := payload.Maps(category, "athletes")
		if len(rows) == 0 {
			rows = payload.Maps(container, "athletes")
		}
		if len(rows) == 0 {
			rows = payload.Maps(container, "players")
		}
		return stats.StatBlock{TeamID: teamID, Keys: keys, Athletes: rows}, true
	}
	return stats.StatBlock{TeamID: teamID}, false
}

// SummaryCompleted reports whether the summary describes a finished game
func SummaryCompleted(summary map[string]interface{}) bool {
	header := payload.First(payload.Map(summary, "header"), "competitions")
	completed, _ := payload.Bool(payload.Map(payload.Map(header, "status"), "type"), "completed")
	return completed
}

// ScoreboardAthletes indexes scoreboard athlete rows by event id, then team
// id. It is the player source of last resort when a summary is unavailable.
func ScoreboardAthletes(scoreboard map[string]interface{}) map[string]map[string][]map[string]interface{} {
	out := map[string]map[string][]map[string]interface{}{}
	for _, ev := range payload.Maps(scoreboard, "events") {
		eventID := payload.ID(ev, "id")
		if eventID == "" {
			continue
		}
		comp := payload.First(ev, "competitions")
		for _, ath := range payload.Maps(comp, "athletes") {
			teamID := payload.ID(payload.Map(ath, "team"), "id")
			if teamID == "" {
				continue
			}
			if out[eventID] == nil {
				out[eventID] = map[string][]map[string]interface{}{}
			}
			out[eventID][teamID] = append(out[eventID][teamID], ath)
		}
	}
	return out
}

func stringList(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}
