package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/espn"
)

const defaultBatchLimit = 8

// Source is the upstream sports API. *espn.Client implements it.
type Source interface {
	FetchTeam(ctx context.Context, teamID string) (map[string]interface{}, error)
	FetchSchedule(ctx context.Context, teamID string, season int) (map[string]interface{}, error)
	FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error)
	FetchRoster(ctx context.Context, teamID string, season int) (map[string]interface{}, error)
	FetchGameSummary(ctx context.Context, eventID string) (map[string]interface{}, error)
	FetchAthleteStats(ctx context.Context, athleteID string, season int) (map[string]interface{}, error)
}

// Fetcher reads through the cache to the Source. Responses that can still
// change (live scoreboards, unfinished games) are never cached.
type Fetcher struct {
	source     Source
	cache      *cache.Cache
	teamID     string
	batchLimit int
}

// NewFetcher creates a fetcher. Cache keys for teamID omit the team; other
// teams' resources are keyed with their id. c may be nil.
func NewFetcher(source Source, c *cache.Cache, teamID string) *Fetcher {
	return &Fetcher{
		source:     source,
		cache:      c,
		teamID:     teamID,
		batchLimit: defaultBatchLimit,
	}
}

// SetBatchLimit bounds the concurrent requests of one batch
func (f *Fetcher) SetBatchLimit(n int) {
	if n > 0 {
		f.batchLimit = n
	}
}

func (f *Fetcher) teamKey(kind, teamID string, season int) string {
	if teamID == f.teamID {
		return cache.Key(kind, season)
	}
	return cache.Key(kind+"-"+teamID, season)
}

type fetchFunc func(ctx context.Context) (map[string]interface{}, error)

func always(map[string]interface{}) bool { return true }

func (f *Fetcher) readThrough(ctx context.Context, key string, fetch fetchFunc, keep func(map[string]interface{}) bool) (map[string]interface{}, error) {
	var data map[string]interface{}
	found, err := f.cache.Get(ctx, key, &data)
	if err != nil {
		log.Printf("[fetcher] ⚠️  cache read %s: %v", key, err)
	}
	if found && data != nil {
		return data, nil
	}

	data, err = fetch(ctx)
	if err != nil {
		return nil, err
	}

	if keep(data) {
		if err := f.cache.Set(ctx, key, data); err != nil {
			log.Printf("[fetcher] ⚠️  cache write %s: %v", key, err)
		}
	}
	return data, nil
}

// Team fetches team info
func (f *Fetcher) Team(ctx context.Context, teamID string, season int) (map[string]interface{}, error) {
	return f.readThrough(ctx, f.teamKey("team", teamID, season), func(ctx context.Context) (map[string]interface{}, error) {
		return f.source.FetchTeam(ctx, teamID)
	}, always)
}

// Schedule fetches a team's schedule for a season end year
func (f *Fetcher) Schedule(ctx context.Context, teamID string, season int) (map[string]interface{}, error) {
	return f.readThrough(ctx, f.teamKey("schedule", teamID, season), func(ctx context.Context) (map[string]interface{}, error) {
		return f.source.FetchSchedule(ctx, teamID, season)
	}, always)
}

// Roster fetches a team's roster for a season end year
func (f *Fetcher) Roster(ctx context.Context, teamID string, season int) (map[string]interface{}, error) {
	return f.readThrough(ctx, f.teamKey("roster", teamID, season), func(ctx context.Context) (map[string]interface{}, error) {
		return f.source.FetchRoster(ctx, teamID, season)
	}, always)
}

// LiveScoreboard fetches today's scoreboard, bypassing the cache
func (f *Fetcher) LiveScoreboard(ctx context.Context) (map[string]interface{}, error) {
	return f.source.FetchScoreboard(ctx, time.Time{})
}

// Scoreboard fetches the scoreboard of one date. It is cached once every
// game on it is over.
func (f *Fetcher) Scoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	return f.readThrough(ctx, cache.Key("scoreboard", espn.DateKey(date)), func(ctx context.Context) (map[string]interface{}, error) {
		return f.source.FetchScoreboard(ctx, date)
	}, allFinished)
}

// Summary fetches a game summary. Only finished games are cached.
func (f *Fetcher) Summary(ctx context.Context, eventID string) (map[string]interface{}, error) {
	return f.readThrough(ctx, cache.Key("summary", eventID), func(ctx context.Context) (map[string]interface{}, error) {
		return f.source.FetchGameSummary(ctx, eventID)
	}, espn.SummaryCompleted)
}

// AthleteStats fetches one athlete's upstream season stats
func (f *Fetcher) AthleteStats(ctx context.Context, athleteID string, season int) (map[string]interface{}, error) {
	return f.readThrough(ctx, cache.Key("athlete-"+athleteID, season), func(ctx context.Context) (map[string]interface{}, error) {
		return f.source.FetchAthleteStats(ctx, athleteID, season)
	}, always)
}

func allFinished(data map[string]interface{}) bool {
	events := espn.ParseEvents(data)
	for _, ev := range events {
		if !ev.Status.Finished() {
			return false
		}
	}
	return len(events) > 0
}

// batch runs fetch for every key with bounded concurrency. A failed key is
// logged and left out of the result; the batch itself never fails.
func batch(ctx context.Context, limit int, label string, keys []string, fetch func(ctx context.Context, key string) (map[string]interface{}, error)) map[string]map[string]interface{} {
	var (
		mu  sync.Mutex
		out = make(map[string]map[string]interface{}, len(keys))
		g   errgroup.Group
	)
	g.SetLimit(limit)

	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		g.Go(func() error {
			data, err := fetch(ctx, key)
			if err != nil {
				log.Printf("[fetcher] ⚠️  %s %s: %v", label, key, err)
				return nil
			}
			mu.Lock()
			out[key] = data
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return out
}

// Summaries fetches many game summaries concurrently, keyed by event id
func (f *Fetcher) Summaries(ctx context.Context, eventIDs []string) map[string]map[string]interface{} {
	return batch(ctx, f.batchLimit, "summary", eventIDs, f.Summary)
}

// Scoreboards fetches the scoreboards of many dates, keyed by YYYYMMDD
func (f *Fetcher) Scoreboards(ctx context.Context, dates []time.Time) map[string]map[string]interface{} {
	keys := make([]string, 0, len(dates))
	byKey := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		k := espn.DateKey(d)
		keys = append(keys, k)
		byKey[k] = d
	}
	return batch(ctx, f.batchLimit, "scoreboard", keys, func(ctx context.Context, key string) (map[string]interface{}, error) {
		return f.Scoreboard(ctx, byKey[key])
	})
}

// AthletesStats fetches upstream season stats for many athletes
func (f *Fetcher) AthletesStats(ctx context.Context, athleteIDs []string, season int) map[string]map[string]interface{} {
	return batch(ctx, f.batchLimit, "athlete stats", athleteIDs, func(ctx context.Context, id string) (map[string]interface{}, error) {
		data, err := f.AthleteStats(ctx, id, season)
		if err != nil {
			return nil, fmt.Errorf("season %d: %w", season, err)
		}
		return data, nil
	})
}
