package stats

import (
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/payload"
)

// FlattenStats turns a [{name, displayValue, value}] list into name -> value,
// preferring displayValue. The first entry for a name wins.
func FlattenStats(items []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(items))
	for _, item := range items {
		stat, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name := payload.String(stat, "name")
		if name == "" {
			continue
		}
		if _, exists := out[name]; exists {
			continue
		}
		if v, ok := Lookup(stat, "displayValue", "value"); ok {
			out[name] = v
		}
	}
	return out
}

// TeamStat is one team-level box-score figure
type TeamStat struct {
	Display string   `json:"display"`
	Value   *float64 `json:"value"`
}

// TeamStatLine is a team's box-score summary for one game
type TeamStatLine struct {
	FieldGoalPct  TeamStat `json:"fieldGoalPct"`
	ThreePointPct TeamStat `json:"threePointPct"`
	FreeThrowPct  TeamStat `json:"freeThrowPct"`
	Rebounds      TeamStat `json:"rebounds"`
	Assists       TeamStat `json:"assists"`
	Turnovers     TeamStat `json:"turnovers"`
	Steals        TeamStat `json:"steals"`
	Blocks        TeamStat `json:"blocks"`
}

// TeamStats reads a box-score team's statistics list
func TeamStats(statistics []interface{}) TeamStatLine {
	m := FlattenStats(statistics)
	find := func(keys ...string) TeamStat {
		raw, ok := Lookup(m, keys...)
		if !ok {
			return TeamStat{Display: unknownDisplay}
		}
		ts := TeamStat{Display: StatOf(raw).String()}
		if f, ok := leadingNumber(raw); ok {
			ts.Value = &f
		}
		return ts
	}
	return TeamStatLine{
		FieldGoalPct:  find("fieldGoalPct", "fgPct"),
		ThreePointPct: find("threePointFieldGoalPct", "threePointPct", "3PtPct"),
		FreeThrowPct:  find("freeThrowPct", "ftPct"),
		Rebounds:      find("totalRebounds", "rebounds"),
		Assists:       find("assists"),
		Turnovers:     find("turnovers", "totalTurnovers"),
		Steals:        find("steals"),
		Blocks:        find("blocks"),
	}
}

// leadingNumber parses values like "45.2%" by dropping everything that is
// not part of a number
func leadingNumber(raw interface{}) (float64, bool) {
	if f, ok := raw.(float64); ok {
		return f, true
	}
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
