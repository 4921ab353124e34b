package backfill

import (
	"context"
	"fmt"

	"github.com/fortuna/courtside/internal/service"
)

// Warmer is the slice of the dashboard a backfill drives. Every call reads
// through the fetcher, so building a view fills the cache behind it.
type Warmer interface {
	History(ctx context.Context, startYear int) (*service.HistoryView, error)
	Roster(ctx context.Context, seasonYear int) *service.RosterView
	Game(ctx context.Context, eventID string) *service.GameView
}

// Runner executes backfill specs against a Warmer.
type Runner struct {
	warmer Warmer
}

// NewRunner constructs a runner
func NewRunner(w Warmer) *Runner {
	return &Runner{warmer: w}
}

// Run executes the job spec, reporting progress via the Reporter if provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (Result, error) {
	if reporter == nil {
		reporter = nopReporter{}
	}
	reporter.OnJobStart(spec)

	var (
		result Result
		err    error
	)
	switch spec.Type {
	case JobTypeSeason:
		if len(spec.StartYears) == 0 {
			err = fmt.Errorf("no seasons provided for job type 'season'")
			break
		}
		if spec.DryRun {
			reporter.OnProgress("Dry-run mode: nothing will be fetched", 0, len(spec.StartYears))
			break
		}
		err = r.runSeasons(ctx, spec.StartYears, reporter, &result)

	case JobTypeGame:
		if len(spec.GameIDs) == 0 {
			err = fmt.Errorf("no game IDs provided for job type 'game'")
			break
		}
		if spec.DryRun {
			reporter.OnProgress("Dry-run mode: nothing will be fetched", 0, len(spec.GameIDs))
			break
		}
		err = r.runGames(ctx, spec.GameIDs, reporter, &result)

	default:
		err = fmt.Errorf("unsupported job type %q", spec.Type)
	}

	if err != nil {
		reporter.OnJobError(err)
		return result, err
	}
	reporter.OnJobComplete(result)
	return result, nil
}

func (r *Runner) runSeasons(ctx context.Context, years []int, reporter Reporter, result *Result) error {
	total := len(years)
	for idx, year := range years {
		if err := ctx.Err(); err != nil {
			return err
		}
		reporter.OnSeasonStart(year, idx, total)

		view, err := r.warmer.History(ctx, year)
		if err != nil {
			return fmt.Errorf("season %d: %w", year, err)
		}
		for _, res := range view.Results {
			reporter.OnGameProcessed(res.Game.ID)
		}

		// roster aggregation reads every completed box score plus athlete stats
		roster := r.warmer.Roster(ctx, year+1)
		players := 0
		for _, g := range roster.Groups {
			players += len(g.Players)
		}

		result.Seasons++
		result.Games += len(view.Results)
		result.Players += players
		reporter.OnProgress(fmt.Sprintf("✓ %s: %d results, %d players", view.SeasonLabel, len(view.Results), players), idx+1, total)
	}
	return nil
}

func (r *Runner) runGames(ctx context.Context, ids []string, reporter Reporter, result *Result) error {
	total := len(ids)
	for idx, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		if view := r.warmer.Game(ctx, id); view == nil || !view.Available {
			result.Unavailable++
			reporter.OnProgress(fmt.Sprintf("⚠️  Game %s unavailable", id), idx+1, total)
			continue
		}

		result.Games++
		reporter.OnGameProcessed(id)
		reporter.OnProgress(fmt.Sprintf("✓ Game %s complete", id), idx+1, total)
	}
	return nil
}
