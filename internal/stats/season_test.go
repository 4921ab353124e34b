package stats_test

import (
	"testing"

	"github.com/fortuna/courtside/internal/stats"
)

func TestResolveSeasonLine_AggregatePreferred(t *testing.T) {
	totals := stats.Totals{Games: 3, Points: 47, Rebounds: 15, Assists: 10, Minutes: 90, FGM: 18, FGA: 40}
	upstream := map[string]interface{}{
		"avgPoints":    "99.9",
		"fieldGoalPct": "10.0",
		"gamesPlayed":  "30",
	}

	line := stats.ResolveSeasonLine(totals, upstream)

	tests := []struct {
		field, got, want string
	}{
		{"gp", line.GamesPlayed, "3"},
		{"ppg", line.Points, "15.7"},
		{"rpg", line.Rebounds, "5"},
		{"mpg", line.Minutes, "30"},
		{"fg", line.FieldGoalPct, "45.0%"},
		{"3p", line.ThreePointPct, "—"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
			}
		})
	}
}

func TestResolveSeasonLine_UpstreamFallback(t *testing.T) {
	upstream := map[string]interface{}{
		"pointsPerGame":         "18.27",
		"rpg":                   float64(6),
		"gamesPlayed":           "29.6",
		"threePointFieldGoalPct": "38.4",
		"ftPct":                 float64(81),
		"fgPct":                 "N/A",
	}

	line := stats.ResolveSeasonLine(stats.Totals{}, upstream)

	tests := []struct {
		field, got, want string
	}{
		{"gp", line.GamesPlayed, "30"},
		{"ppg", line.Points, "18.3"},
		{"rpg", line.Rebounds, "6"},
		{"apg", line.Assists, "—"},
		{"3p", line.ThreePointPct, "38.4%"},
		{"ft", line.FreeThrowPct, "81%"},
		{"fg", line.FieldGoalPct, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
			}
		})
	}
}

func TestResolveSeasonLine_NothingKnown(t *testing.T) {
	line := stats.ResolveSeasonLine(stats.Totals{}, nil)

	if line.Points != "—" || line.GamesPlayed != "—" || line.FieldGoalPct != "—" {
		t.Errorf("ResolveSeasonLine() = %+v, want unknown markers", line)
	}
}
