package stats_test

import (
	"math"
	"testing"

	"github.com/fortuna/courtside/internal/stats"
)

var seasonKeys = []string{
	"minutes",
	"points",
	"fieldGoalsMade-fieldGoalsAttempted",
	"threePointFieldGoalsMade-threePointFieldGoalsAttempted",
	"freeThrowsMade-freeThrowsAttempted",
	"rebounds",
	"assists",
	"steals",
	"blocks",
	"turnovers",
}

func gameBlock(rows ...map[string]interface{}) stats.StatBlock {
	return stats.StatBlock{TeamID: "41", Keys: seasonKeys, Athletes: rows}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseMadeAttempted(t *testing.T) {
	tests := []struct {
		in       string
		made     int
		attempts int
		ok       bool
	}{
		{"7-12", 7, 12, true},
		{"0-0", 0, 0, true},
		{" 3-5 ", 3, 5, true},
		{"", 0, 0, false},
		{"7", 0, 0, false},
		{"7-12-1", 0, 0, false},
		{"x-4", 0, 0, false},
		{"4-", 0, 0, false},
		{"--", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, a, ok := stats.ParseMadeAttempted(tt.in)
			if m != tt.made || a != tt.attempts || ok != tt.ok {
				t.Errorf("ParseMadeAttempted(%q) = %d, %d, %v, want %d, %d, %v",
					tt.in, m, a, ok, tt.made, tt.attempts, tt.ok)
			}
		})
	}
}

func TestAggregate_SumsCountingStats(t *testing.T) {
	blocks := []stats.StatBlock{
		gameBlock(athleteRow("7", "Guard", "30", "18", "7-12", "2-5", "2-2", "6", "4", "1", "0", "2")),
		gameBlock(athleteRow("7", "Guard", "28", "12", "5-10", "1-4", "1-2", "4", "6", "2", "1", "3")),
	}

	season := stats.Aggregate(blocks)

	totals, ok := season.Player("7")
	if !ok {
		t.Fatal("Player(7) missing")
	}
	if totals.Games != 2 {
		t.Errorf("Games = %d, want 2", totals.Games)
	}
	if totals.Points != 30 || totals.Rebounds != 10 || totals.Assists != 10 {
		t.Errorf("pts/reb/ast = %v/%v/%v, want 30/10/10", totals.Points, totals.Rebounds, totals.Assists)
	}
	if totals.Steals != 3 || totals.Blocks != 1 || totals.Turnovers != 5 || totals.Minutes != 58 {
		t.Errorf("stl/blk/to/min = %v/%v/%v/%v", totals.Steals, totals.Blocks, totals.Turnovers, totals.Minutes)
	}
	if totals.FGM != 12 || totals.FGA != 22 || totals.TPM != 3 || totals.TPA != 9 || totals.FTM != 3 || totals.FTA != 4 {
		t.Errorf("shooting = %d-%d %d-%d %d-%d", totals.FGM, totals.FGA, totals.TPM, totals.TPA, totals.FTM, totals.FTA)
	}
}

func TestAggregate_MalformedSplitAddsNothing(t *testing.T) {
	blocks := []stats.StatBlock{
		gameBlock(athleteRow("7", "Guard", "30", "18", "7-12", "2-5", "2-2", "6", "4", "1", "0", "2")),
		gameBlock(athleteRow("7", "Guard", "30", "10", "--", "3", "abc", "6", "4", "1", "0", "2")),
	}

	totals, _ := stats.Aggregate(blocks).Player("7")

	if totals.FGM != 7 || totals.FGA != 12 {
		t.Errorf("FG = %d-%d, want 7-12", totals.FGM, totals.FGA)
	}
	if totals.TPM != 2 || totals.TPA != 5 {
		t.Errorf("3P = %d-%d, want 2-5", totals.TPM, totals.TPA)
	}
	if totals.FTM != 2 || totals.FTA != 2 {
		t.Errorf("FT = %d-%d, want 2-2", totals.FTM, totals.FTA)
	}
	if totals.Games != 2 || totals.Points != 28 {
		t.Errorf("Games/Points = %d/%v, want 2/28", totals.Games, totals.Points)
	}
}

func TestAggregate_NonNumericCountsAsZero(t *testing.T) {
	blocks := []stats.StatBlock{
		gameBlock(athleteRow("9", "Forward", "DNP", "--", "0-0", "0-0", "0-0", "", "x", "0", "0", "0")),
	}

	totals, ok := stats.Aggregate(blocks).Player("9")
	if !ok {
		t.Fatal("Player(9) missing")
	}
	if totals.Games != 1 || totals.Points != 0 || totals.Minutes != 0 || totals.Rebounds != 0 {
		t.Errorf("totals = %+v, want one game and zero counts", totals)
	}
}

func TestAggregate_AppearanceRule(t *testing.T) {
	zeroMinutes := athleteRow("5", "Bench", "0", "0", "0-0", "0-0", "0-0", "0", "0", "0", "0", "0")
	dnp := athleteRow("5", "Bench")
	dnp["didNotPlay"] = true

	season := stats.Aggregate([]stats.StatBlock{gameBlock(zeroMinutes), gameBlock(dnp)})

	totals, ok := season.Player("5")
	if !ok {
		t.Fatal("Player(5) missing")
	}
	if totals.Games != 1 {
		t.Errorf("Games = %d, want 1 (zero minutes counts, didNotPlay does not)", totals.Games)
	}
}

func TestAggregate_SkipsAnonymousRows(t *testing.T) {
	row := map[string]interface{}{
		"stats": []interface{}{"30", "18", "7-12", "2-5", "2-2", "6", "4", "1", "0", "2"},
	}

	season := stats.Aggregate([]stats.StatBlock{gameBlock(row)})

	if season.Len() != 0 {
		t.Errorf("Len() = %d, want 0", season.Len())
	}
}

func TestAggregate_IDsInFirstAppearanceOrder(t *testing.T) {
	blocks := []stats.StatBlock{
		gameBlock(athleteRow("b", "B"), athleteRow("a", "A")),
		gameBlock(athleteRow("c", "C"), athleteRow("b", "B")),
	}

	ids := stats.Aggregate(blocks).IDs()

	want := []string{"b", "a", "c"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestAggregate_PointsPerGameOverAppearances(t *testing.T) {
	// Three completed games; the player sits out the second and is absent
	// from its box score.
	blocks := []stats.StatBlock{
		gameBlock(athleteRow("11", "Scorer", "25", "10", "4-9", "0-2", "2-2", "3", "1", "0", "0", "1")),
		gameBlock(athleteRow("12", "Teammate", "30", "8", "3-6", "1-1", "1-2", "5", "2", "1", "0", "0")),
		gameBlock(athleteRow("11", "Scorer", "32", "20", "8-14", "2-4", "2-3", "6", "3", "1", "1", "2")),
	}

	totals, ok := stats.Aggregate(blocks).Player("11")
	if !ok {
		t.Fatal("Player(11) missing")
	}

	avg := totals.Averages()
	if avg.Points == nil || !approx(*avg.Points, 15) {
		t.Errorf("ppg = %v, want 15", avg.Points)
	}
	if line := stats.ResolveSeasonLine(totals, nil); line.Points != "15" || line.GamesPlayed != "2" {
		t.Errorf("season line ppg/gp = %s/%s, want 15/2", line.Points, line.GamesPlayed)
	}
}

func TestTotals_AveragesUnavailable(t *testing.T) {
	avg := stats.Totals{}.Averages()

	if avg.Points != nil || avg.Rebounds != nil || avg.Minutes != nil {
		t.Error("per-game averages available with zero games")
	}
	if avg.FieldGoalPct != nil || avg.ThreePointPct != nil || avg.FreeThrowPct != nil {
		t.Error("percentages available with zero attempts")
	}
}

func TestTotals_AveragesPercentages(t *testing.T) {
	totals := stats.Totals{Games: 4, Points: 50, FGM: 9, FGA: 20, TPM: 0, TPA: 0, FTM: 3, FTA: 4}

	avg := totals.Averages()

	if avg.Points == nil || !approx(*avg.Points, 12.5) {
		t.Errorf("Points = %v, want 12.5", avg.Points)
	}
	if avg.FieldGoalPct == nil || !approx(*avg.FieldGoalPct, 45) {
		t.Errorf("FieldGoalPct = %v, want 45", avg.FieldGoalPct)
	}
	if avg.ThreePointPct != nil {
		t.Errorf("ThreePointPct = %v, want unavailable", *avg.ThreePointPct)
	}
	if avg.FreeThrowPct == nil || !approx(*avg.FreeThrowPct, 75) {
		t.Errorf("FreeThrowPct = %v, want 75", avg.FreeThrowPct)
	}
}
