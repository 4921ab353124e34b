package espn

import (
	"fmt"
	"time"
)

// SeasonEndYear is the year the current season ends in. College seasons span
// the new year, so from July on we are already in next year's season.
func SeasonEndYear(now time.Time) int {
	if now.Month() >= time.July {
		return now.Year() + 1
	}
	return now.Year()
}

// SeasonLabel renders a season end year as "2025-26"
func SeasonLabel(endYear int) string {
	return fmt.Sprintf("%d-%02d", endYear-1, endYear%100)
}

// DateKey formats a date the way the scoreboard endpoint expects it
func DateKey(t time.Time) string {
	return t.UTC().Format("20060102")
}

// ParseDate reads ESPN timestamps. ESPN sometimes omits seconds:
// "2025-11-15T01:00Z".
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04Z", s)
	}
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
