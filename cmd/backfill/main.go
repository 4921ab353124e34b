package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/fortuna/courtside/internal/backfill"
	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/service"
)

const (
	appName    = "courtside-backfill"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	fs := flag.NewFlagSet(appName, flag.ExitOnError)
	cfg, err := config.Bind(fs)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	var (
		seasons = fs.IntSlice("season", nil, "season start year to warm, repeatable (e.g. 2024 for 2024-25)")
		recent  = fs.Int("recent", service.HistorySeasons, "warm this many seasons back from the current one when --season is not given")
		games   = fs.StringSlice("game", nil, "ESPN game id to warm, repeatable")
		dryRun  = fs.Bool("dry-run", false, "report the job without fetching anything")
	)
	fs.Parse(os.Args[1:])

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if !*dryRun && (cfg.Cache.Backend == config.CacheMemory || cfg.Cache.Backend == config.CacheNone) {
		log.Fatalf("Backfill needs a persistent cache, got --cache=%s (use redis or postgres)", cfg.Cache.Backend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := cache.Open(ctx, cache.OpenOptions{
		Kind:     cfg.Cache.Backend,
		RedisURL: cfg.Cache.RedisURL,
		DSN:      cfg.Cache.DSN,
		Retries:  1,
	})
	if err != nil {
		log.Fatalf("Failed to open %s cache: %v", cfg.Cache.Backend, err)
	}
	defer backend.Close()

	client := espn.New(espn.Options{
		BaseURL:       cfg.ESPN.BaseURL,
		CommonBaseURL: cfg.ESPN.CommonBaseURL,
		SportPath:     cfg.ESPN.SportPath,
		Timeout:       cfg.ESPN.Timeout,
	})
	fetcher := service.NewFetcher(client, backend.Cache(cfg.Cache.TTL), cfg.ESPN.TeamID)
	dashboard := service.NewDashboard(fetcher, service.Options{
		TeamID:          cfg.ESPN.TeamID,
		BroadcastTeamID: cfg.ESPN.BroadcastTeamID,
	})

	spec := backfill.JobSpec{DryRun: *dryRun}
	switch {
	case len(*games) > 0:
		spec.Type = backfill.JobTypeGame
		spec.GameIDs = *games
	case len(*seasons) > 0:
		spec.Type = backfill.JobTypeSeason
		spec.StartYears = *seasons
	default:
		spec.Type = backfill.JobTypeSeason
		spec.StartYears = backfill.RecentStartYears(dashboard.CurrentStartYear(), min(*recent, service.HistorySeasons))
	}

	result, err := backfill.NewRunner(dashboard).Run(ctx, spec, &consoleReporter{dryRun: *dryRun})
	if err != nil {
		log.Fatalf("backfill failed: %v", err)
	}

	log.Printf("✓ Backfill completed: %d seasons, %d games, %d players (%d unavailable)",
		result.Seasons, result.Games, result.Players, result.Unavailable)
}

type consoleReporter struct {
	dryRun bool
}

func (c *consoleReporter) OnJobStart(spec backfill.JobSpec) {
	log.Printf("Starting %s job (dry_run=%v)", spec.Type, c.dryRun)
}

func (c *consoleReporter) OnSeasonStart(startYear int, index int, total int) {
	log.Printf("[%d/%d] %s", index+1, total, espn.SeasonLabel(startYear+1))
}

func (c *consoleReporter) OnGameProcessed(gameID string) {
	log.Printf("Processed game %s", gameID)
}

func (c *consoleReporter) OnProgress(message string, current int, total int) {
	log.Printf("Progress: %s (%d/%d)", message, current, total)
}

func (c *consoleReporter) OnJobComplete(backfill.Result) {
	log.Println("Job complete")
}

func (c *consoleReporter) OnJobError(err error) {
	log.Printf("Job error: %v", err)
}
