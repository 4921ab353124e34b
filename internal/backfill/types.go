// Package backfill warms the response cache for past seasons and games so
// the first dashboard request after a deploy does not fan out to ESPN.
package backfill

// JobType enumerates the supported backfill job variants.
type JobType string

const (
	JobTypeSeason JobType = "season"
	JobTypeGame   JobType = "game"
)

// JobSpec describes the work to be performed by the runner.
type JobSpec struct {
	Type       JobType
	StartYears []int    // season start years, for JobTypeSeason
	GameIDs    []string // ESPN event ids, for JobTypeGame
	DryRun     bool
}

// Result counts what a run touched.
type Result struct {
	Seasons     int
	Games       int
	Players     int
	Unavailable int
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnSeasonStart(startYear int, index int, total int)
	OnGameProcessed(gameID string)
	OnProgress(message string, current int, total int)
	OnJobComplete(result Result)
	OnJobError(err error)
}

// RecentStartYears lists n season start years ending at current, newest first.
func RecentStartYears(current, n int) []int {
	years := make([]int, 0, max(n, 0))
	for i := 0; i < n; i++ {
		years = append(years, current-i)
	}
	return years
}

type nopReporter struct{}

func (nopReporter) OnJobStart(JobSpec) {}
func (nopReporter) OnSeasonStart(int, int, int) {}
func (nopReporter) OnGameProcessed(string) {}
func (nopReporter) OnProgress(string, int, int) {}
func (nopReporter) OnJobComplete(Result) {}
func (nopReporter) OnJobError(error) {}
