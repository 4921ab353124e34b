package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fortuna/courtside/internal/payload"
)

// SeasonLine is a player's display-ready season stats
type SeasonLine struct {
	GamesPlayed   string `json:"gp"`
	Points        string `json:"ppg"`
	Rebounds      string `json:"rpg"`
	Assists       string `json:"apg"`
	Minutes       string `json:"mpg"`
	Steals        string `json:"spg"`
	Blocks        string `json:"bpg"`
	FieldGoalPct  string `json:"fgPct"`
	ThreePointPct string `json:"threePct"`
	FreeThrowPct  string `json:"ftPct"`
}

// ResolveSeasonLine prefers values computed from the player's aggregated
// box scores and falls back to upstream season stats (name -> value) for
// anything the aggregate cannot provide.
func ResolveSeasonLine(totals Totals, upstream map[string]interface{}) SeasonLine {
	avg := totals.Averages()

	perGame := func(v *float64, keys ...string) string {
		if v != nil {
			return formatDecimal(*v)
		}
		raw, _ := Lookup(upstream, keys...)
		return formatValue(raw)
	}
	percent := func(v *float64, keys ...string) string {
		if v != nil {
			return fmt.Sprintf("%.1f%%", *v)
		}
		raw, _ := Lookup(upstream, keys...)
		return formatPercent(raw)
	}

	line := SeasonLine{
		Points:        perGame(avg.Points, "avgPoints", "pointsPerGame", "ppg", "points"),
		Rebounds:      perGame(avg.Rebounds, "avgRebounds", "reboundsPerGame", "rpg", "rebounds"),
		Assists:       perGame(avg.Assists, "avgAssists", "assistsPerGame", "apg", "assists"),
		Minutes:       perGame(avg.Minutes, "avgMinutes", "minutesPerGame", "mpg", "minutes"),
		Steals:        perGame(avg.Steals, "avgSteals", "stealsPerGame", "spg", "steals"),
		Blocks:        perGame(avg.Blocks, "avgBlocks", "blocksPerGame", "bpg", "blocks"),
		FieldGoalPct:  percent(avg.FieldGoalPct, "fieldGoalPct", "fgPct"),
		ThreePointPct: percent(avg.ThreePointPct, "threePointPct", "threePointFieldGoalPct", "threePct", "3PtPct"),
		FreeThrowPct:  percent(avg.FreeThrowPct, "freeThrowPct", "ftPct"),
	}

	if totals.Games > 0 {
		line.GamesPlayed = strconv.Itoa(totals.Games)
	} else {
		raw, _ := Lookup(upstream, "gamesPlayed", "games", "appearances")
		line.GamesPlayed = formatInt(raw)
	}
	return line
}

// formatDecimal renders one decimal place and drops a trailing ".0"
func formatDecimal(f float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(f, 'f', 1, 64), ".0")
}

func formatValue(raw interface{}) string {
	if isBlank(raw) {
		return unknownDisplay
	}
	if f, ok := payload.ParseNumber(raw); ok {
		return formatDecimal(f)
	}
	return fmt.Sprint(raw)
}

func formatInt(raw interface{}) string {
	if isBlank(raw) {
		return unknownDisplay
	}
	if f, ok := payload.ParseNumber(raw); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return fmt.Sprint(raw)
}

func formatPercent(raw interface{}) string {
	if isBlank(raw) {
		return unknownDisplay
	}
	if f, ok := payload.ParseNumber(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64) + "%"
	}
	return fmt.Sprint(raw)
}

func isBlank(raw interface{}) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) == ""
}
