package cmd

import (
	"github.com/masmgr/gitwork/internal/output"
)

func writeFeedReport(rc *RunContext, report *output.FeedReport) error {
	writer := output.NewFeedWriter(rc.Output.Format)
	return writer.Write(report, rc.Output)
}
