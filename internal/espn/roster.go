package espn

import (
	"fmt"
	"math"
	"strings"

	"github.com/fortuna/courtside/internal/payload"
	"github.com/fortuna/courtside/internal/stats"
)

// Athlete is a roster entry
type Athlete struct {
	ID          string                 `json:"id"`
	DisplayName string                 `json:"displayName"`
	Jersey      string                 `json:"jersey,omitempty"`
	Position    string                 `json:"position"`
	Height      string                 `json:"height,omitempty"`
	Weight      string                 `json:"weight,omitempty"`
	Experience  string                 `json:"experience,omitempty"`
	Hometown    string                 `json:"hometown,omitempty"`
	Headshot    string                 `json:"headshot,omitempty"`
	Injuries    []string               `json:"injuries,omitempty"`
	Stats       map[string]interface{} `json:"-"`
}

// ParseRoster reads the athletes of a roster payload. Pro rosters group
// athletes by position ({position, items}); those groups are flattened.
func ParseRoster(data map[string]interface{}) []Athlete {
	var rows []map[string]interface{}
	for _, entry := range payload.Maps(data, "athletes") {
		if items, ok := entry["items"]; ok && items != nil {
			rows = append(rows, payload.Maps(entry, "items")...)
			continue
		}
		rows = append(rows, entry)
	}

	athletes := make([]Athlete, 0, len(rows))
	for _, row := range rows {
		athlete := parseAthlete(row)
		if athlete.ID == "" {
			continue
		}
		athletes = append(athletes, athlete)
	}
	return athletes
}

func parseAthlete(row map[string]interface{}) Athlete {
	athlete := Athlete{
		ID:          payload.ID(row, "id"),
		DisplayName: payload.FirstString(payload.String(row, "displayName"), payload.String(row, "fullName")),
		Jersey:      payload.String(row, "jersey"),
		Position:    payload.String(payload.Map(row, "position"), "abbreviation"),
		Height:      HeightDisplay(row),
		Weight:      payload.String(row, "displayWeight"),
		Headshot:    payload.String(payload.Map(row, "headshot"), "href"),
		Stats:       InlineStats(row),
	}
	if athlete.Position == "" {
		athlete.Position = "N/A"
	}

	exp := payload.Map(row, "experience")
	athlete.Experience = payload.FirstString(payload.String(exp, "displayValue"), payload.String(exp, "abbreviation"))

	birth := payload.Map(row, "birthPlace")
	parts := []string{}
	for _, key := range []string{"city", "state", "country"} {
		if v := payload.String(birth, key); v != "" {
			parts = append(parts, v)
		}
		if len(parts) == 2 {
			break
		}
	}
	athlete.Hometown = strings.Join(parts, ", ")

	for _, inj := range payload.Maps(row, "injuries") {
		desc := payload.FirstString(
			payload.String(inj, "status"),
			payload.String(payload.Map(inj, "type"), "description"),
		)
		if desc != "" {
			athlete.Injuries = append(athlete.Injuries, desc)
		}
	}
	return athlete
}

// HeightDisplay prefers ESPN's displayHeight; a numeric height is inches
func HeightDisplay(row map[string]interface{}) string {
	if display := payload.String(row, "displayHeight"); display != "" {
		return display
	}
	switch h := row["height"].(type) {
	case float64:
		total := int(math.Round(h))
		return fmt.Sprintf("%d' %d\"", total/12, total%12)
	case string:
		return h
	}
	return ""
}

// InlineStats flattens the season stats some roster payloads embed in
// statistics[0], either directly or under splits.categories
func InlineStats(row map[string]interface{}) map[string]interface{} {
	first := payload.First(row, "statistics")
	if items := payload.Array(first, "stats"); len(items) > 0 {
		return stats.FlattenStats(items)
	}
	return stats.FlattenStats(categoryStats(payload.Map(first, "splits")))
}

// AthleteSeasonStats flattens a common-API athlete stats payload
func AthleteSeasonStats(data map[string]interface{}) map[string]interface{} {
	items := categoryStats(data)
	items = append(items, categoryStats(payload.Map(data, "splits"))...)
	return stats.FlattenStats(items)
}

func categoryStats(m map[string]interface{}) []interface{} {
	var items []interface{}
	for _, cat := range payload.Maps(m, "categories") {
		items = append(items, payload.Array(cat, "stats")...)
	}
	return items
}

// MergeStats combines flattened stat maps; earlier maps win
func MergeStats(maps ...map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for _, m := range maps {
		for k, v := range m {
			if _, exists := out[k]; !exists {
				out[k] = v
			}
		}
	}
	return out
}
