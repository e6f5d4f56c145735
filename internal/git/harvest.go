package git

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Harvester collects matching commits from single repositories. Failures
// are absorbed: a repository that cannot be read contributes nothing.
type Harvester struct {
	opts   ReadOptions
	fetch  bool
	logger logrus.FieldLogger

	// Overridable in tests.
	fetchFn   func(ctx context.Context, repoPath string) error
	newReader func(opts ReadOptions) (RepositoryReader, error)
}

// NewHarvester creates a harvester. opts.RepoPath is ignored; each Harvest
// call supplies its own repository.
func NewHarvester(opts ReadOptions, fetch bool, logger logrus.FieldLogger) *Harvester {
	if logger == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		logger = discard
	}
	return &Harvester{
		opts:    opts,
		fetch:   fetch,
		logger:  logger,
		fetchFn: FetchRemotes,
		newReader: func(opts ReadOptions) (RepositoryReader, error) {
			return NewHistoryReader(opts)
		},
	}
}

// Harvest returns the matching commits of one repository, newest first.
func (h *Harvester) Harvest(ctx context.Context, repoPath string) []CommitRecord {
	log := h.logger.WithField("repo", repoPath)

	if h.fetch {
		if err := h.fetchFn(ctx, repoPath); err != nil {
			log.WithError(err).Debug("Fetch failed, scanning local history")
		}
	}

	opts := h.opts
	opts.RepoPath = repoPath

	reader, err := h.newReader(opts)
	if err != nil {
		log.WithError(err).Debug("Skipping repository")
		return nil
	}

	records, err := reader.ReadCommits(ctx)
	if err != nil {
		log.WithError(err).WithField("kept", len(records)).Debug("History walk failed")
	}
	log.WithField("commits", len(records)).Debug("Harvested repository")
	return records
}
