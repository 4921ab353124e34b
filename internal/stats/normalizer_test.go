package stats_test

import (
	"testing"

	"github.com/fortuna/courtside/internal/stats"
)

var boxKeys = []string{
	"minutes",
	"points",
	"fieldGoalsMade-fieldGoalsAttempted",
	"threePointFieldGoalsMade-threePointFieldGoalsAttempted",
	"rebounds",
	"assists",
}

func athleteRow(id, name string, raw ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"athlete": map[string]interface{}{
			"id":          id,
			"displayName": name,
			"headshot":    map[string]interface{}{"href": "https://img/" + id + ".png"},
		},
		"starter": true,
		"stats":   raw,
	}
}

func TestLookup(t *testing.T) {
	m := map[string]interface{}{
		"PTS":    "12",
		"points": nil,
		"REB":    float64(7),
	}

	tests := []struct {
		name   string
		keys   []string
		want   interface{}
		wantOK bool
	}{
		{"skips nil value", []string{"points", "PTS"}, "12", true},
		{"first present wins", []string{"REB", "PTS"}, float64(7), true},
		{"none match", []string{"assists", "AST"}, nil, false},
		{"no keys", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stats.Lookup(m, tt.keys...)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Lookup(%v) = %v, %v, want %v, %v", tt.keys, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStatMap_PositionalPairing(t *testing.T) {
	raw := []interface{}{"31", "18", "7-12", "2-5", "6", "4"}

	m := stats.StatMap(boxKeys, raw)

	for i, key := range boxKeys {
		if m[key] != raw[i] {
			t.Errorf("StatMap()[%q] = %v, want %v", key, m[key], raw[i])
		}
	}
	if len(m) != len(boxKeys) {
		t.Errorf("len(StatMap()) = %d, want %d", len(m), len(boxKeys))
	}
}

func TestStatMap_LengthMismatchUsesIndexKeys(t *testing.T) {
	raw := []interface{}{"31", "18", "7-12"}

	m := stats.StatMap(boxKeys, raw)

	if _, ok := m["points"]; ok {
		t.Error("StatMap() paired names with a short array")
	}
	for i, key := range []string{"0", "1", "2"} {
		if m[key] != raw[i] {
			t.Errorf("StatMap()[%q] = %v, want %v", key, m[key], raw[i])
		}
	}
}

func TestStatMap_KeyedPassThrough(t *testing.T) {
	raw := map[string]interface{}{"PTS": "9"}

	m := stats.StatMap(boxKeys, raw)

	if m["PTS"] != "9" {
		t.Errorf("StatMap()[PTS] = %v, want 9", m["PTS"])
	}
}

func TestNormalizePlayer(t *testing.T) {
	row := athleteRow("4433", "Paige Bueckers", "31", "18", "7-12", "2-5", "6", "4")

	line, ok := stats.NormalizePlayer(boxKeys, row)
	if !ok {
		t.Fatal("NormalizePlayer() dropped a named athlete")
	}

	if line.ID != "4433" {
		t.Errorf("ID = %s, want 4433", line.ID)
	}
	if line.Name != "Paige Bueckers" {
		t.Errorf("Name = %s, want Paige Bueckers", line.Name)
	}
	if !line.Starter {
		t.Error("Starter = false, want true")
	}
	if line.Headshot != "https://img/4433.png" {
		t.Errorf("Headshot = %s", line.Headshot)
	}
	if got := line.Points.String(); got != "18" {
		t.Errorf("Points = %s, want 18", got)
	}
	if got := line.FieldGoals.String(); got != "7-12" {
		t.Errorf("FieldGoals = %s, want 7-12", got)
	}
	if got := line.ThreePointers.String(); got != "2-5" {
		t.Errorf("ThreePointers = %s, want 2-5", got)
	}
	if got := line.Steals.String(); got != "—" {
		t.Errorf("Steals = %s, want —", got)
	}
	if line.Steals.Known() {
		t.Error("Steals.Known() = true for a missing field")
	}
}

func TestNormalizePlayer_AlternateSpellings(t *testing.T) {
	row := map[string]interface{}{
		"displayName": "Azzi Fudd",
		"uid":         "s:40~a:99",
		"statistics": map[string]interface{}{
			"PTS":           float64(22),
			"totalRebounds": "5",
			"fgm-fga":       "8-14",
			"3PT":           "4-7",
		},
	}

	line, ok := stats.NormalizePlayer(nil, row)
	if !ok {
		t.Fatal("NormalizePlayer() dropped a named athlete")
	}

	tests := []struct {
		field string
		got   stats.Stat
		want  string
	}{
		{"points", line.Points, "22"},
		{"rebounds", line.Rebounds, "5"},
		{"fieldGoals", line.FieldGoals, "8-14"},
		{"threePointers", line.ThreePointers, "4-7"},
		{"assists", line.Assists, "—"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if tt.got.String() != tt.want {
				t.Errorf("%s = %s, want %s", tt.field, tt.got, tt.want)
			}
		})
	}
	if line.ID != "s:40~a:99" {
		t.Errorf("ID = %s, want uid fallback", line.ID)
	}
}

func TestNormalizePlayer_NestedStatsFallback(t *testing.T) {
	row := map[string]interface{}{
		"name": "Sarah Strong",
		"athlete": map[string]interface{}{
			"stats": []interface{}{"30", "14", "6-9", "0-1", "11", "3"},
		},
	}

	line, ok := stats.NormalizePlayer(boxKeys, row)
	if !ok {
		t.Fatal("NormalizePlayer() dropped a named athlete")
	}
	if line.Rebounds.String() != "11" {
		t.Errorf("Rebounds = %s, want 11", line.Rebounds)
	}
	if line.ID != "Sarah Strong" {
		t.Errorf("ID = %s, want name fallback", line.ID)
	}
}

func TestNormalizePlayers_DropsNamelessAndKeepsOrder(t *testing.T) {
	athletes := []map[string]interface{}{
		athleteRow("1", "First", "10", "2", "1-3", "0-1", "1", "0"),
		{"stats": []interface{}{"5"}},
		athleteRow("3", "Third", "20", "9", "4-6", "1-2", "3", "1"),
	}

	var names []string
	for line := range stats.NormalizePlayers(boxKeys, athletes) {
		names = append(names, line.Name)
	}

	if len(names) != 2 || names[0] != "First" || names[1] != "Third" {
		t.Errorf("NormalizePlayers() names = %v, want [First Third]", names)
	}
}

func TestNormalizePlayers_LengthMismatchStillYieldsRecords(t *testing.T) {
	athletes := []map[string]interface{}{
		athleteRow("1", "Short Row", "10", "2"),
		athleteRow("2", "Long Row", "1", "2", "3", "4", "5", "6", "7"),
	}

	lines := stats.CollectPlayers(stats.StatBlock{Keys: boxKeys, Athletes: athletes})

	if len(lines) != 2 {
		t.Fatalf("CollectPlayers() returned %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if line.Points.Known() {
			t.Errorf("%s: Points = %s, want unknown in degraded mode", line.Name, line.Points)
		}
	}
}

func TestNormalizePlayers_Restartable(t *testing.T) {
	athletes := []map[string]interface{}{
		athleteRow("1", "A", "10", "2", "1-3", "0-1", "1", "0"),
		athleteRow("2", "B", "12", "4", "2-3", "0-0", "2", "1"),
	}
	seq := stats.NormalizePlayers(boxKeys, athletes)

	count := func() []string {
		var ids []string
		for line := range seq {
			ids = append(ids, line.ID)
		}
		return ids
	}

	first, second := count(), count()
	if len(first) != 2 || len(second) != 2 || first[0] != second[0] || first[1] != second[1] {
		t.Errorf("passes differ: %v vs %v", first, second)
	}
}

func TestNormalizePlayers_EarlyBreak(t *testing.T) {
	athletes := []map[string]interface{}{
		athleteRow("1", "A"),
		athleteRow("2", "B"),
		athleteRow("3", "C"),
	}

	n := 0
	for range stats.NormalizePlayers(nil, athletes) {
		n++
		if n == 1 {
			break
		}
	}
	if n != 1 {
		t.Errorf("iterations = %d, want 1", n)
	}
}
