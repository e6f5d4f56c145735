package output

import (
	"bufio"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/fatih/color"
)

// ConsoleFeedWriter writes the feed as aligned, colored columns followed by
// a summary.
type ConsoleFeedWriter struct{}

type consolePalette struct {
	repo *color.Color
	hash *color.Color
	ins  *color.Color
	del  *color.Color
}

// newConsolePalette returns the column colors. Files never get escapes.
func newConsolePalette(toFile bool) consolePalette {
	p := consolePalette{
		repo: color.New(color.Bold),
		hash: color.New(color.Faint),
		ins:  color.New(color.FgGreen),
		del:  color.New(color.FgRed),
	}
	if toFile {
		for _, c := range []*color.Color{p.repo, p.hash, p.ins, p.del} {
			c.DisableColor()
		}
	}
	return p
}

// Write outputs the feed report to the console.
func (w *ConsoleFeedWriter) Write(report *FeedReport, options OutputOptions) (err error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	defer func() { err = closeOutput(file, err) }()

	bw := bufio.NewWriter(out)
	palette := newConsolePalette(file != nil)
	layout := timeLayout(options)
	commits := report.Feed.Commits

	repoWidth, insWidth, delWidth := 0, 1, 1
	repos := make([]string, len(commits))
	for i, c := range commits {
		repos[i] = relativeRepoPath(report.BaseDir, c.RepoPath)
		repoWidth = max(repoWidth, utf8.RuneCountInString(repos[i]))
		insWidth = max(insWidth, len(strconv.Itoa(c.Insertions)))
		delWidth = max(delWidth, len(strconv.Itoa(c.Deletions)))
	}

	for i, c := range commits {
		fmt.Fprintf(bw, "%s  %s  %s  %s %s  %s\n",
			formatCommitTime(c.When, layout),
			palette.repo.Sprintf("%-*s", repoWidth, repos[i]),
			palette.hash.Sprint(c.ShortSHA()),
			palette.ins.Sprintf("+%*d", insWidth, c.Insertions),
			palette.del.Sprintf("-%*d", delWidth, c.Deletions),
			c.Summary,
		)
	}

	fmt.Fprintf(bw, "\n%d commits shown (%s)\n", len(commits), report.Window.Description())
	fmt.Fprintf(bw, "Total LoC: %s %s\n",
		palette.ins.Sprintf("+%d", report.Feed.TotalInsertions),
		palette.del.Sprintf("-%d", report.Feed.TotalDeletions),
	)

	return bw.Flush()
}

// RawFeedWriter writes one tab-separated line per commit and nothing else.
type RawFeedWriter struct{}

// Write outputs the feed report as tab-separated lines.
func (w *RawFeedWriter) Write(report *FeedReport, options OutputOptions) (err error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	defer func() { err = closeOutput(file, err) }()

	bw := bufio.NewWriter(out)
	layout := timeLayout(options)
	for _, c := range report.Feed.Commits {
		fmt.Fprintf(bw, "%s\t%s\t%s\t+%d\t-%d\t%s\n",
			formatCommitTime(c.When, layout),
			relativeRepoPath(report.BaseDir, c.RepoPath),
			c.ShortSHA(),
			c.Insertions,
			c.Deletions,
			c.Summary,
		)
	}
	return bw.Flush()
}
