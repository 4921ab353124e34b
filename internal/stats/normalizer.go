package stats

import (
	"iter"
	"strconv"

	"github.com/fortuna/courtside/internal/payload"
)

// Alternate spellings per logical field, tried in order
var (
	minutesKeys    = []string{"minutes", "MIN"}
	pointsKeys     = []string{"points", "PTS"}
	reboundsKeys   = []string{"rebounds", "REB", "totalRebounds"}
	assistsKeys    = []string{"assists", "AST"}
	stealsKeys     = []string{"steals", "STL"}
	blocksKeys     = []string{"blocks", "BLK"}
	turnoversKeys  = []string{"turnovers", "TO"}
	fieldGoalKeys  = []string{"fieldGoalsMade-fieldGoalsAttempted", "fgm-fga", "fg", "FG"}
	threePointKeys = []string{"threePointFieldGoalsMade-threePointFieldGoalsAttempted", "3ptm-3pta", "threePt", "3PT"}
	freeThrowKeys  = []string{"freeThrowsMade-freeThrowsAttempted", "FT"}
)

const unknownDisplay = "—"

// Stat is a single raw stat value. The zero value is unknown.
type Stat struct {
	raw   string
	known bool
}

// StatOf wraps a decoded scalar; nil, objects and arrays are unknown
func StatOf(v interface{}) Stat {
	switch val := v.(type) {
	case string:
		return Stat{raw: val, known: true}
	case float64:
		return Stat{raw: strconv.FormatFloat(val, 'f', -1, 64), known: true}
	case int:
		return Stat{raw: strconv.Itoa(val), known: true}
	case bool:
		return Stat{raw: strconv.FormatBool(val), known: true}
	}
	return Stat{}
}

func (s Stat) Known() bool { return s.known }

func (s Stat) String() string {
	if !s.known {
		return unknownDisplay
	}
	return s.raw
}

// Float parses the stat as a number
func (s Stat) Float() (float64, bool) {
	if !s.known {
		return 0, false
	}
	return payload.ParseNumber(s.raw)
}

func (s Stat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PlayerLine is one athlete's normalized stat line for a single game
type PlayerLine struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position,omitempty"`
	Starter       bool   `json:"starter"`
	DidNotPlay    bool   `json:"didNotPlay,omitempty"`
	Headshot      string `json:"headshot,omitempty"`
	Minutes       Stat   `json:"minutes"`
	Points        Stat   `json:"points"`
	Rebounds      Stat   `json:"rebounds"`
	Assists       Stat   `json:"assists"`
	Steals        Stat   `json:"steals"`
	Blocks        Stat   `json:"blocks"`
	Turnovers     Stat   `json:"turnovers"`
	FieldGoals    Stat   `json:"fieldGoals"`
	ThreePointers Stat   `json:"threePointers"`
	FreeThrows    Stat   `json:"freeThrows"`
}

// StatBlock is one team's athlete rows from a single game, with the ordered
// field names that describe positional stat arrays.
type StatBlock struct {
	TeamID   string
	Keys     []string
	Athletes []map[string]interface{}
}

// StatMap keys an athlete's raw stats. A positional array is paired with
// keys index for index when the lengths agree and keyed by index ("0", "1",
// ...) otherwise. A keyed object is returned unchanged.
func StatMap(keys []string, raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		out := make(map[string]interface{}, len(v))
		if len(v) == len(keys) {
			for i, k := range keys {
				out[k] = v[i]
			}
			return out
		}
		for i, val := range v {
			out[strconv.Itoa(i)] = val
		}
		return out
	}
	return map[string]interface{}{}
}

func rawStats(athlete map[string]interface{}) interface{} {
	if v, ok := Lookup(athlete, "stats", "statistics"); ok {
		return v
	}
	nested := payload.Map(athlete, "athlete")
	if v, ok := nested["stats"]; ok && v != nil {
		return v
	}
	return nil
}

// NormalizePlayer builds a PlayerLine from one athlete row. It reports false
// when no display name can be resolved.
func NormalizePlayer(keys []string, athlete map[string]interface{}) (PlayerLine, bool) {
	nested := payload.Map(athlete, "athlete")

	name := payload.FirstString(
		payload.String(nested, "displayName"),
		payload.String(athlete, "displayName"),
		payload.String(athlete, "name"),
	)
	if name == "" {
		return PlayerLine{}, false
	}

	line := PlayerLine{
		ID: payload.FirstString(
			payload.ID(nested, "id"),
			payload.ID(athlete, "id"),
			payload.ID(athlete, "uid"),
			payload.String(athlete, "name"),
		),
		Name: name,
		Position: payload.FirstString(
			payload.String(payload.Map(athlete, "position"), "abbreviation"),
			payload.String(payload.Map(nested, "position"), "abbreviation"),
		),
		Headshot: payload.FirstString(
			payload.String(payload.Map(nested, "headshot"), "href"),
			payload.String(payload.Map(athlete, "headshot"), "href"),
		),
	}
	line.Starter, _ = payload.Bool(athlete, "starter")
	line.DidNotPlay, _ = payload.Bool(athlete, "didNotPlay")

	m := StatMap(keys, rawStats(athlete))
	field := func(candidates []string) Stat {
		v, _ := Lookup(m, candidates...)
		return StatOf(v)
	}
	line.Minutes = field(minutesKeys)
	line.Points = field(pointsKeys)
	line.Rebounds = field(reboundsKeys)
	line.Assists = field(assistsKeys)
	line.Steals = field(stealsKeys)
	line.Blocks = field(blocksKeys)
	line.Turnovers = field(turnoversKeys)
	line.FieldGoals = field(fieldGoalKeys)
	line.ThreePointers = field(threePointKeys)
	line.FreeThrows = field(freeThrowKeys)

	return line, true
}

// NormalizePlayers yields a PlayerLine per nameable athlete, in input order.
// The sequence can be ranged over any number of times.
func NormalizePlayers(keys []string, athletes []map[string]interface{}) iter.Seq[PlayerLine] {
	return func(yield func(PlayerLine) bool) {
		for _, a := range athletes {
			line, ok := NormalizePlayer(keys, a)
			if !ok {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// CollectPlayers materializes NormalizePlayers
func CollectPlayers(block StatBlock) []PlayerLine {
	lines := make([]PlayerLine, 0, len(block.Athletes))
	for line := range NormalizePlayers(block.Keys, block.Athletes) {
		lines = append(lines, line)
	}
	return lines
}
