package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/service"
)

// fakeSource serves JSON fixtures keyed like "schedule/41/2026" and counts
// every request
type fakeSource struct {
	mu       sync.Mutex
	calls    map[string]int
	fixtures map[string]string
	failures map[string]error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls:    map[string]int{},
		fixtures: map[string]string{},
		failures: map[string]error{},
	}
}

func (f *fakeSource) serve(key string) (map[string]interface{}, error) {
	f.mu.Lock()
	f.calls[key]++
	f.mu.Unlock()

	if err := f.failures[key]; err != nil {
		return nil, err
	}
	body, ok := f.fixtures[key]
	if !ok {
		return nil, fmt.Errorf("ESPN API error: status=404 body=no fixture for %s", key)
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fakeSource) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeSource) FetchTeam(_ context.Context, teamID string) (map[string]interface{}, error) {
	return f.serve("team/" + teamID)
}

func (f *fakeSource) FetchSchedule(_ context.Context, teamID string, season int) (map[string]interface{}, error) {
	return f.serve(fmt.Sprintf("schedule/%s/%d", teamID, season))
}

func (f *fakeSource) FetchScoreboard(_ context.Context, date time.Time) (map[string]interface{}, error) {
	if date.IsZero() {
		return f.serve("scoreboard/live")
	}
	return f.serve("scoreboard/" + espn.DateKey(date))
}

func (f *fakeSource) FetchRoster(_ context.Context, teamID string, season int) (map[string]interface{}, error) {
	return f.serve(fmt.Sprintf("roster/%s/%d", teamID, season))
}

func (f *fakeSource) FetchGameSummary(_ context.Context, eventID string) (map[string]interface{}, error) {
	return f.serve("summary/" + eventID)
}

func (f *fakeSource) FetchAthleteStats(_ context.Context, athleteID string, season int) (map[string]interface{}, error) {
	return f.serve(fmt.Sprintf("athlete/%s/%d", athleteID, season))
}

// fixedNow is mid-December of the 2025-26 season
var fixedNow = time.Date(2025, time.December, 10, 18, 0, 0, 0, time.UTC)

func testOptions() service.Options {
	return service.Options{
		TeamID:          "41",
		BroadcastTeamID: "58",
		Now:             func() time.Time { return fixedNow },
	}
}

func newTestFetcher(t *testing.T, src *fakeSource) (*service.Fetcher, *cache.MemoryStore) {
	t.Helper()
	store := cache.NewMemoryStore()
	c := cache.New(store, time.Hour).WithClock(func() time.Time { return fixedNow })
	return service.NewFetcher(src, c, "41"), store
}

// event renders one schedule/scoreboard event. state is pre, in or post.
func event(id, date, state string, season int, home, away competitor) string {
	return eventWithStatus(id, date, state, state == "post", season, home, away)
}

// eventWithStatus lets a fixture set state and completed independently
func eventWithStatus(id, date, state string, completed bool, season int, home, away competitor) string {
	return fmt.Sprintf(`{
  "id": %q, "date": %q, "name": "%s at %s", "shortName": "%s @ %s",
  "season": {"year": %d},
  "competitions": [{
    "status": {"type": {"state": %q, "completed": %t, "shortDetail": %q}},
    "competitors": [%s, %s]
  }]
}`, id, date, away.name, home.name, away.id, home.id, season, state, completed, state, home.json("home"), away.json("away"))
}

type competitor struct {
	id, name string
	score    string
	winner   *bool
}

func (c competitor) json(side string) string {
	s := fmt.Sprintf(`{"homeAway": %q, "team": {"id": %q, "displayName": %q}`, side, c.id, c.name)
	if c.score != "" {
		s += fmt.Sprintf(`, "score": {"displayValue": %q}`, c.score)
	}
	if c.winner != nil {
		s += fmt.Sprintf(`, "winner": %t`, *c.winner)
	}
	return s + "}"
}

func boolPtr(b bool) *bool { return &b }

func eventsJSON(events ...string) string {
	out := `{"events": [`
	for i, ev := range events {
		if i > 0 {
			out += ","
		}
		out += ev
	}
	return out + "]}"
}

var boxKeys = `["minutes", "points", "rebounds", "assists", "fieldGoalsMade-fieldGoalsAttempted"]`

// summaryJSON renders a game summary with box-score player rows for team 41.
// rows are [id, name, minutes, points, rebounds, assists, fg].
func summaryJSON(eventID string, completed bool, teamScore, oppScore, oppID string, rows ...[7]string) string {
	state := "in"
	if completed {
		state = "post"
	}
	athletes := ""
	for i, r := range rows {
		if i > 0 {
			athletes += ","
		}
		athletes += fmt.Sprintf(`{"athlete": {"id": %q, "displayName": %q}, "stats": [%q, %q, %q, %q, %q]}`,
			r[0], r[1], r[2], r[3], r[4], r[5], r[6])
	}
	return fmt.Sprintf(`{
  "header": {"id": %q, "competitions": [{
    "date": "2025-11-04T23:00Z",
    "status": {"type": {"state": %q, "completed": %t}},
    "competitors": [
      {"id": "41", "homeAway": "home", "team": {"id": "41", "displayName": "UConn Huskies"}, "score": %q},
      {"id": %q, "homeAway": "away", "team": {"id": %q, "displayName": "Opponent"}, "score": %q}
    ]
  }]},
  "boxscore": {
    "teams": [
      {"team": {"id": "41"}, "statistics": [{"name": "fieldGoalPct", "displayValue": "48.2"}, {"name": "totalRebounds", "displayValue": "40"}]},
      {"team": {"id": %q}, "statistics": [{"name": "fieldGoalPct", "displayValue": "39.0"}]}
    ],
    "players": [
      {"team": {"id": "41"}, "statistics": [{"keys": %s, "athletes": [%s]}]}
    ]
  }
}`, eventID, state, completed, teamScore, oppID, oppID, oppScore, oppID, boxKeys, athletes)
}
