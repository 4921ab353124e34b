package stats

import (
	"strconv"
	"strings"
)

// ParseMadeAttempted splits a "<made>-<attempted>" shooting string. Anything
// that is not exactly two integers reports ok=false and zero for both.
func ParseMadeAttempted(s string) (made, attempted int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return m, a, true
}

// Totals are one player's running season totals
type Totals struct {
	Games     int     `json:"games"`
	Points    float64 `json:"points"`
	Rebounds  float64 `json:"rebounds"`
	Assists   float64 `json:"assists"`
	Steals    float64 `json:"steals"`
	Blocks    float64 `json:"blocks"`
	Turnovers float64 `json:"turnovers"`
	Minutes   float64 `json:"minutes"`
	FGM       int     `json:"fgm"`
	FGA       int     `json:"fga"`
	TPM       int     `json:"tpm"`
	TPA       int     `json:"tpa"`
	FTM       int     `json:"ftm"`
	FTA       int     `json:"fta"`
}

func (t *Totals) add(line PlayerLine) {
	t.Games++
	t.Points += number(line.Points)
	t.Rebounds += number(line.Rebounds)
	t.Assists += number(line.Assists)
	t.Steals += number(line.Steals)
	t.Blocks += number(line.Blocks)
	t.Turnovers += number(line.Turnovers)
	t.Minutes += number(line.Minutes)

	m, a, _ := ParseMadeAttempted(line.FieldGoals.raw)
	t.FGM += m
	t.FGA += a
	m, a, _ = ParseMadeAttempted(line.ThreePointers.raw)
	t.TPM += m
	t.TPA += a
	m, a, _ = ParseMadeAttempted(line.FreeThrows.raw)
	t.FTM += m
	t.FTA += a
}

func number(s Stat) float64 {
	f, _ := s.Float()
	return f
}

// Averages are per-game values and shooting percentages. A nil field is
// unavailable: no games for averages, no attempts for percentages.
type Averages struct {
	Games         int      `json:"games"`
	Points        *float64 `json:"points"`
	Rebounds      *float64 `json:"rebounds"`
	Assists       *float64 `json:"assists"`
	Steals        *float64 `json:"steals"`
	Blocks        *float64 `json:"blocks"`
	Turnovers     *float64 `json:"turnovers"`
	Minutes       *float64 `json:"minutes"`
	FieldGoalPct  *float64 `json:"fieldGoalPct"`
	ThreePointPct *float64 `json:"threePointPct"`
	FreeThrowPct  *float64 `json:"freeThrowPct"`
}

func (t Totals) Averages() Averages {
	avg := Averages{Games: t.Games}
	if t.Games > 0 {
		per := func(total float64) *float64 {
			v := total / float64(t.Games)
			return &v
		}
		avg.Points = per(t.Points)
		avg.Rebounds = per(t.Rebounds)
		avg.Assists = per(t.Assists)
		avg.Steals = per(t.Steals)
		avg.Blocks = per(t.Blocks)
		avg.Turnovers = per(t.Turnovers)
		avg.Minutes = per(t.Minutes)
	}
	avg.FieldGoalPct = pct(t.FGM, t.FGA)
	avg.ThreePointPct = pct(t.TPM, t.TPA)
	avg.FreeThrowPct = pct(t.FTM, t.FTA)
	return avg
}

func pct(made, attempted int) *float64 {
	if attempted == 0 {
		return nil
	}
	v := float64(made) / float64(attempted) * 100
	return &v
}

// Season holds the aggregated totals of every player seen in a season's box
// scores. It is built once by Aggregate and never modified.
type Season struct {
	players map[string]Totals
	order   []string
}

// Player returns the totals for an athlete id
func (s Season) Player(id string) (Totals, bool) {
	t, ok := s.players[id]
	return t, ok
}

// Len is the number of players with at least one appearance
func (s Season) Len() int { return len(s.order) }

// IDs lists athlete ids in first-appearance order
func (s Season) IDs() []string {
	return append([]string(nil), s.order...)
}

// Aggregate folds one team's box-score blocks from completed games into
// season totals. Every row that appears for an athlete id counts as a game
// played unless it is flagged didNotPlay, including rows with zero minutes.
func Aggregate(blocks []StatBlock) Season {
	season := Season{players: make(map[string]Totals)}
	for _, block := range blocks {
		for line := range NormalizePlayers(block.Keys, block.Athletes) {
			if line.ID == "" || line.DidNotPlay {
				continue
			}
			t, seen := season.players[line.ID]
			if !seen {
				season.order = append(season.order, line.ID)
			}
			t.add(line)
			season.players[line.ID] = t
		}
	}
	return season
}
