package aggregation

import (
	"context"
	"runtime"

	"github.com/masmgr/gitwork/internal/git"
	"golang.org/x/sync/errgroup"
)

// Harvester reads the matching commits of one repository.
type Harvester interface {
	Harvest(ctx context.Context, repoPath string) []git.CommitRecord
}

// Compile-time interface conformance check.
var _ Harvester = (*git.Harvester)(nil)

// Aggregator fans repositories out to a bounded pool of harvesters.
type Aggregator struct {
	harvester Harvester
	workers   int
}

// NewAggregator creates an aggregator. workers <= 0 uses one worker per CPU.
func NewAggregator(harvester Harvester, workers int) *Aggregator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Aggregator{harvester: harvester, workers: workers}
}

// Workers returns the size of the worker pool.
func (a *Aggregator) Workers() int {
	return a.workers
}

// Collect harvests every repository and returns all records, grouped in
// repository order.
func (a *Aggregator) Collect(ctx context.Context, repos []string) []git.CommitRecord {
	results := make([][]git.CommitRecord, len(repos))

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, repo := range repos {
		g.Go(func() error {
			results[i] = a.harvester.Harvest(ctx, repo)
			return nil
		})
	}
	// Harvest absorbs its own failures, so Wait never reports one.
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]git.CommitRecord, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

// Run collects all repositories and builds the feed.
func (a *Aggregator) Run(ctx context.Context, repos []string, limit int) Feed {
	return BuildFeed(a.Collect(ctx, repos), limit)
}
