package espn

import (
	"github.com/fortuna/courtside/internal/payload"
)

// Team is the team-info summary
type Team struct {
	ID           string         `json:"id"`
	DisplayName  string         `json:"displayName"`
	Abbreviation string         `json:"abbreviation,omitempty"`
	Location     string         `json:"location,omitempty"`
	Color        string         `json:"color,omitempty"`
	Logo         string         `json:"logo,omitempty"`
	Record       string         `json:"record,omitempty"`
	Standing     string         `json:"standing,omitempty"`
	Rank         int            `json:"rank,omitempty"`
	NextEvent    *ScheduleEvent `json:"nextEvent,omitempty"`
}

// ParseTeam reads a team-info payload ({"team": {...}})
func ParseTeam(data map[string]interface{}) Team {
	t := payload.Map(data, "team")
	team := Team{
		ID:           payload.ID(t, "id"),
		DisplayName:  payload.String(t, "displayName"),
		Abbreviation: payload.String(t, "abbreviation"),
		Location:     payload.String(t, "location"),
		Color:        payload.String(t, "color"),
		Logo:         payload.String(payload.First(t, "logos"), "href"),
		Standing:     payload.String(t, "standingSummary"),
	}
	if rank := payload.Int(t, "rank"); rank > 0 && rank < 99 {
		team.Rank = rank
	}

	records := payload.Maps(payload.Map(t, "record"), "items")
	for _, r := range records {
		if payload.String(r, "type") == "total" {
			team.Record = payload.String(r, "summary")
			break
		}
	}
	if team.Record == "" && len(records) > 0 {
		team.Record = payload.String(records[0], "summary")
	}

	if next := payload.First(t, "nextEvent"); len(next) > 0 {
		if ev, ok := ParseEvent(next); ok {
			team.NextEvent = &ev
		}
	}
	return team
}
