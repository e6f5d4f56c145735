package output

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONFeedWriter writes feed reports as JSON.
type JSONFeedWriter struct{}

// JSONFeedReport is the JSON output structure for a feed.
type JSONFeedReport struct {
	BaseDir         string           `json:"baseDir"`
	Window          string           `json:"window"`
	Since           string           `json:"since"`
	Until           *string          `json:"until,omitempty"`
	GeneratedAt     string           `json:"generatedAt"`
	Matched         int              `json:"matched"`
	Shown           int              `json:"shown"`
	TotalInsertions int              `json:"totalInsertions"`
	TotalDeletions  int              `json:"totalDeletions"`
	Commits         []JSONFeedCommit `json:"commits"`
}

// JSONFeedCommit is the JSON output structure for a single commit.
type JSONFeedCommit struct {
	Repo        string `json:"repo"`
	SHA         string `json:"sha"`
	ShortSHA    string `json:"shortSha"`
	When        string `json:"when"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Summary     string `json:"summary"`
	Insertions  int    `json:"insertions"`
	Deletions   int    `json:"deletions"`
}

// Write outputs the feed report as JSON.
func (w *JSONFeedWriter) Write(report *FeedReport, options OutputOptions) (err error) {
	commits := make([]JSONFeedCommit, len(report.Feed.Commits))
	for i, c := range report.Feed.Commits {
		commits[i] = JSONFeedCommit{
			Repo:        relativeRepoPath(report.BaseDir, c.RepoPath),
			SHA:         c.SHA,
			ShortSHA:    c.ShortSHA(),
			When:        c.When.Format(time.RFC3339),
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			Summary:     c.Summary,
			Insertions:  c.Insertions,
			Deletions:   c.Deletions,
		}
	}

	since, until := windowBounds(report)
	jsonReport := JSONFeedReport{
		BaseDir:         report.BaseDir,
		Window:          report.Window.Description(),
		Since:           since,
		Until:           until,
		GeneratedAt:     report.GeneratedAt.Format(time.RFC3339),
		Matched:         report.Feed.Matched,
		Shown:           len(commits),
		TotalInsertions: report.Feed.TotalInsertions,
		TotalDeletions:  report.Feed.TotalDeletions,
		Commits:         commits,
	}

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	defer func() { err = closeOutput(file, err) }()

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonReport); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
