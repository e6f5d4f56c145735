package cmd

import (
	"time"

	"github.com/masmgr/gitwork/internal/aggregation"
	"github.com/masmgr/gitwork/internal/discovery"
	"github.com/masmgr/gitwork/internal/git"
	"github.com/masmgr/gitwork/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func feedAction(c *cli.Context) error {
	rc, err := NewRunContext(c)
	if err != nil {
		return err
	}

	repos, err := discovery.FindRepositories(rc.BaseDir, discovery.Options{
		MaxDepth: rc.Config.Scan.MaxDepth,
		Exclude:  rc.Config.Scan.Exclude,
	})
	if err != nil {
		return err
	}
	rc.Logger.WithField("count", len(repos)).Debug("Found repositories")

	harvester := git.NewHarvester(rc.ReadOptions(), rc.Fetch, rc.Logger)
	aggregator := aggregation.NewAggregator(harvester, rc.Config.Scan.Workers)

	started := time.Now()
	feed := aggregator.Run(c.Context, repos, rc.Config.Output.Limit)
	rc.Logger.WithFields(logrus.Fields{
		"matched": feed.Matched,
		"shown":   len(feed.Commits),
		"workers": aggregator.Workers(),
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Debug("Aggregated feed")

	if len(feed.Commits) == 0 {
		return &aggregation.NoCommitsError{
			Phrase:           rc.Window.Phrase(),
			IdentityFiltered: rc.IdentityFiltered(),
		}
	}

	return writeFeedReport(rc, &output.FeedReport{
		BaseDir:     rc.BaseDir,
		Window:      rc.Window,
		GeneratedAt: now(),
		Feed:        feed,
	})
}
