package output

import (
	"encoding/csv"
	"strconv"
)

// CSVFeedWriter writes feed reports as CSV.
type CSVFeedWriter struct{}

// Write outputs the feed report as CSV, one row per commit.
func (w *CSVFeedWriter) Write(report *FeedReport, options OutputOptions) (err error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	defer func() { err = closeOutput(file, err) }()

	writer := csv.NewWriter(out)

	// Write header
	headers := []string{"Time", "Repo", "SHA", "AuthorName", "AuthorEmail", "Insertions", "Deletions", "Summary"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	for _, c := range report.Feed.Commits {
		row := []string{
			c.When.Format(reportDateTimeLayout),
			relativeRepoPath(report.BaseDir, c.RepoPath),
			c.SHA,
			c.Author.Name,
			c.Author.Email,
			strconv.Itoa(c.Insertions),
			strconv.Itoa(c.Deletions),
			c.Summary,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
