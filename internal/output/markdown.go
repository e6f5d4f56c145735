package output

import (
	"bufio"
	"fmt"
	"strings"
)

// MarkdownFeedWriter writes feed reports as Markdown.
type MarkdownFeedWriter struct{}

// Write outputs the feed report as Markdown.
func (w *MarkdownFeedWriter) Write(report *FeedReport, options OutputOptions) (err error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	defer func() { err = closeOutput(file, err) }()

	bw := bufio.NewWriter(out)
	layout := timeLayout(options)
	feed := report.Feed

	// Header
	fmt.Fprintln(bw, "# Recent Activity")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "**Directory:** %s\n\n", report.BaseDir)
	fmt.Fprintf(bw, "**Window:** %s (since %s", report.Window.Description(), report.Window.Since.Format(reportDateLayout))
	if report.Window.Until != nil {
		fmt.Fprintf(bw, ", until %s", report.Window.Until.Format(reportDateLayout))
	}
	fmt.Fprint(bw, ")\n\n")
	if feed.Truncated() {
		fmt.Fprintf(bw, "**Commits:** %d of %d shown\n\n", len(feed.Commits), feed.Matched)
	} else {
		fmt.Fprintf(bw, "**Commits:** %d\n\n", len(feed.Commits))
	}
	fmt.Fprintf(bw, "**Total LoC:** +%d -%d\n\n", feed.TotalInsertions, feed.TotalDeletions)

	// Table
	fmt.Fprintln(bw, "| Time | Repo | Commit | + | - | Summary |")
	fmt.Fprintln(bw, "|------|------|--------|---|---|---------|")
	for _, c := range feed.Commits {
		fmt.Fprintf(bw, "| %s | `%s` | `%s` | %d | %d | %s |\n",
			formatCommitTime(c.When, layout),
			relativeRepoPath(report.BaseDir, c.RepoPath),
			c.ShortSHA(),
			c.Insertions,
			c.Deletions,
			escapeMarkdown(c.Summary),
		)
	}

	return bw.Flush()
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
