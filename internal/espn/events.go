package espn

import (
	"slices"
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/payload"
	"github.com/fortuna/courtside/internal/stats"
)

// TeamRef identifies a team inside an event
type TeamRef struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	ShortName    string `json:"shortName,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Logo         string `json:"logo,omitempty"`
}

// Competitor is one side of an event
type Competitor struct {
	Team     TeamRef     `json:"team"`
	HomeAway string      `json:"homeAway"`
	Winner   *bool       `json:"winner,omitempty"`
	Score    stats.Score `json:"-"`
	Record   string      `json:"record,omitempty"`
	Rank     int         `json:"rank,omitempty"`
}

// ScoreDisplay is the score as ESPN would show it, or ""
func (c Competitor) ScoreDisplay() string {
	return stats.ResolveScore(c.Score).Display
}

// Status of an event
type Status struct {
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Detail      string `json:"detail,omitempty"`
	ShortDetail string `json:"shortDetail,omitempty"`
	Description string `json:"description,omitempty"`
	Clock       string `json:"clock,omitempty"`
	Period      int    `json:"period,omitempty"`
}

func (s Status) InProgress() bool { return s.State == "in" }

// Finished reports a completed game; the schedule endpoint sometimes only
// sets state "post".
func (s Status) Finished() bool { return s.Completed || s.State == "post" }

// Label is the short status text shown on a game card
func (s Status) Label() string {
	if s.Completed {
		return "Final"
	}
	if s.InProgress() {
		switch {
		case s.Clock != "" && strings.Contains(s.ShortDetail, s.Clock):
			return s.ShortDetail
		case s.ShortDetail != "" && s.Clock != "":
			return s.Clock + " - " + s.ShortDetail
		case s.ShortDetail != "":
			return s.ShortDetail
		case s.Clock != "":
			return s.Clock
		default:
			return "In Progress"
		}
	}
	return payload.FirstString(s.ShortDetail, s.Detail, s.Description)
}

// Venue where an event is played
type Venue struct {
	Name  string `json:"name,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// ScheduleEvent is one scheduled, live or completed game
type ScheduleEvent struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Name        string       `json:"name"`
	ShortName   string       `json:"shortName"`
	SeasonYear  int          `json:"seasonYear"`
	Status      Status       `json:"status"`
	Competitors []Competitor `json:"competitors"`
	Venue       Venue        `json:"venue"`
	Broadcasts  []string     `json:"broadcasts"`
}

// Competitor returns the side played by teamID
func (e ScheduleEvent) Competitor(teamID string) (Competitor, bool) {
	for _, c := range e.Competitors {
		if c.Team.ID == teamID {
			return c, true
		}
	}
	return Competitor{}, false
}

// Opponent returns the first side not played by teamID
func (e ScheduleEvent) Opponent(teamID string) (Competitor, bool) {
	for _, c := range e.Competitors {
		if c.Team.ID != teamID {
			return c, true
		}
	}
	return Competitor{}, false
}

// Involves reports whether teamID plays in the event
func (e ScheduleEvent) Involves(teamID string) bool {
	_, ok := e.Competitor(teamID)
	return ok
}

// ParseEvents reads the events of a schedule or scoreboard payload. Events
// without an id are skipped.
func ParseEvents(data map[string]interface{}) []ScheduleEvent {
	raw := payload.Maps(data, "events")
	events := make([]ScheduleEvent, 0, len(raw))
	for _, ev := range raw {
		if event, ok := ParseEvent(ev); ok {
			events = append(events, event)
		}
	}
	return events
}

// ParseEvent reads one event object
func ParseEvent(ev map[string]interface{}) (ScheduleEvent, bool) {
	event := ScheduleEvent{
		ID:        payload.ID(ev, "id"),
		Name:      payload.String(ev, "name"),
		ShortName: payload.String(ev, "shortName"),
	}
	if event.ID == "" {
		return ScheduleEvent{}, false
	}
	event.SeasonYear = payload.Int(payload.Map(ev, "season"), "year")

	comp := payload.First(ev, "competitions")
	// summary headers carry the date on the competition only
	event.Date, _ = ParseDate(payload.FirstString(payload.String(ev, "date"), payload.String(comp, "date")))
	status := payload.Map(comp, "status")
	if len(status) == 0 {
		status = payload.Map(ev, "status")
	}
	event.Status = parseStatus(status)

	for _, c := range payload.Maps(comp, "competitors") {
		event.Competitors = append(event.Competitors, parseCompetitor(c))
	}

	venue := payload.Map(comp, "venue")
	address := payload.Map(venue, "address")
	event.Venue = Venue{
		Name:  payload.String(venue, "fullName"),
		City:  payload.String(address, "city"),
		State: payload.String(address, "state"),
	}
	event.Broadcasts = Networks(comp)

	return event, true
}

func parseStatus(status map[string]interface{}) Status {
	typ := payload.Map(status, "type")
	completed, _ := payload.Bool(typ, "completed")
	return Status{
		State:       payload.String(typ, "state"),
		Completed:   completed,
		Detail:      payload.String(typ, "detail"),
		ShortDetail: payload.String(typ, "shortDetail"),
		Description: payload.String(typ, "description"),
		Clock:       payload.String(status, "displayClock"),
		Period:      payload.Int(status, "period"),
	}
}

func parseCompetitor(c map[string]interface{}) Competitor {
	competitor := Competitor{
		Team:     parseTeamRef(payload.Map(c, "team")),
		HomeAway: payload.String(c, "homeAway"),
		Score:    stats.ParseScore(c["score"]),
	}
	if winner, ok := payload.Bool(c, "winner"); ok {
		competitor.Winner = &winner
	}

	record := payload.First(c, "records")
	if len(record) == 0 {
		record = payload.First(c, "record")
	}
	competitor.Record = payload.FirstString(payload.String(record, "summary"), payload.String(record, "displayValue"))

	// 99 is how ESPN marks an unranked team
	if rank := payload.Int(payload.Map(c, "curatedRank"), "current"); rank > 0 && rank < 99 {
		competitor.Rank = rank
	}
	return competitor
}

func parseTeamRef(team map[string]interface{}) TeamRef {
	ref := TeamRef{
		ID:           payload.ID(team, "id"),
		DisplayName:  payload.FirstString(payload.String(team, "displayName"), payload.String(team, "name")),
		ShortName:    payload.String(team, "shortDisplayName"),
		Abbreviation: payload.String(team, "abbreviation"),
		Logo:         payload.String(team, "logo"),
	}
	if ref.Logo == "" {
		ref.Logo = payload.String(payload.First(team, "logos"), "href")
	}
	return ref
}

// Networks lists the broadcast networks of a competition, de-duplicated in
// first-seen order
func Networks(comp map[string]interface{}) []string {
	broadcasts := payload.Array(comp, "broadcasts")
	if len(broadcasts) == 0 {
		broadcasts = payload.Array(comp, "broadcast")
	}

	names := []string{}
	for _, item := range broadcasts {
		b, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		media := payload.Map(b, "media")
		var first string
		if list := payload.Array(b, "names"); len(list) > 0 {
			first, _ = list[0].(string)
		}
		name := payload.FirstString(
			payload.String(media, "shortName"),
			payload.String(media, "name"),
			payload.String(b, "shortName"),
			payload.String(b, "name"),
			first,
		)
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// BackfillBroadcasts returns a copy of primary where every event without
// broadcasts takes them from the secondary event with the same id
func BackfillBroadcasts(primary, secondary []ScheduleEvent) []ScheduleEvent {
	byID := make(map[string][]string, len(secondary))
	for _, ev := range secondary {
		if len(ev.Broadcasts) > 0 {
			byID[ev.ID] = ev.Broadcasts
		}
	}

	out := make([]ScheduleEvent, len(primary))
	for i, ev := range primary {
		if len(ev.Broadcasts) == 0 {
			if alt, ok := byID[ev.ID]; ok {
				ev.Broadcasts = slices.Clone(alt)
			}
		}
		out[i] = ev
	}
	return out
}

// FilterSeason keeps events of one season end year
func FilterSeason(events []ScheduleEvent, seasonYear int) []ScheduleEvent {
	out := make([]ScheduleEvent, 0, len(events))
	for _, ev := range events {
		if ev.SeasonYear == seasonYear {
			out = append(out, ev)
		}
	}
	return out
}

// Completed keeps finished events, in input order
func Completed(events []ScheduleEvent) []ScheduleEvent {
	out := make([]ScheduleEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status.Finished() {
			out = append(out, ev)
		}
	}
	return out
}

// Upcoming keeps events that have neither started nor finished, earliest first
func Upcoming(events []ScheduleEvent) []ScheduleEvent {
	return byDate(events, func(s Status) bool { return !s.Finished() && !s.InProgress() })
}

// Remaining keeps every event Completed drops, in progress included,
// earliest first
func Remaining(events []ScheduleEvent) []ScheduleEvent {
	return byDate(events, func(s Status) bool { return !s.Finished() })
}

func byDate(events []ScheduleEvent, keep func(Status) bool) []ScheduleEvent {
	out := make([]ScheduleEvent, 0, len(events))
	for _, ev := range events {
		if keep(ev.Status) {
			out = append(out, ev)
		}
	}
	slices.SortStableFunc(out, func(a, b ScheduleEvent) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
