package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeLayout renders commit times in local time to the minute.
const DefaultTimeLayout = "2006-01-02 15:04"

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

func timeLayout(options OutputOptions) string {
	if options.TimeLayout == "" {
		return DefaultTimeLayout
	}
	return options.TimeLayout
}

func formatCommitTime(t time.Time, layout string) string {
	return t.Local().Format(layout)
}

// relativeRepoPath renders repo relative to base. The base itself is "."
// and repositories outside base keep their full path.
func relativeRepoPath(base, repo string) string {
	if base == "" {
		return repo
	}
	rel, err := filepath.Rel(base, repo)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return repo
	}
	return rel
}

// windowBounds returns the window start and, for closed windows, its end.
func windowBounds(report *FeedReport) (string, *string) {
	since := report.Window.Since.Format(reportDateTimeLayout)
	if report.Window.Until == nil {
		return since, nil
	}
	until := report.Window.Until.Format(reportDateTimeLayout)
	return since, &until
}

// openOutputWriter returns the destination and, when it is a file, the
// handle the caller must close.
func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.OutputPath == "" {
		if options.Stdout != nil {
			return options.Stdout, nil, nil
		}
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func closeOutput(file *os.File, err error) error {
	if file == nil {
		return err
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
