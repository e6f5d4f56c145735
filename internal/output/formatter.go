package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/masmgr/gitwork/internal/aggregation"
	"github.com/masmgr/gitwork/internal/window"
)

// Compile-time interface conformance checks.
var (
	_ FeedWriter = (*ConsoleFeedWriter)(nil)
	_ FeedWriter = (*RawFeedWriter)(nil)
	_ FeedWriter = (*JSONFeedWriter)(nil)
	_ FeedWriter = (*CSVFeedWriter)(nil)
	_ FeedWriter = (*MarkdownFeedWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatRaw      OutputFormat = "raw"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
)

// Formats lists every supported format.
var Formats = []OutputFormat{FormatConsole, FormatRaw, FormatJSON, FormatCSV, FormatMarkdown}

// ParseFormat validates a format name. The empty string selects console.
func ParseFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatConsole, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", s, strings.Join(names, ", "))
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string    // empty writes to Stdout
	TimeLayout string    // defaults to DefaultTimeLayout
	Stdout     io.Writer // defaults to os.Stdout
}

// FeedReport holds one run's activity feed.
type FeedReport struct {
	BaseDir     string
	Window      window.Window
	GeneratedAt time.Time
	Feed        aggregation.Feed
}

// FeedWriter writes activity feed reports.
type FeedWriter interface {
	Write(report *FeedReport, options OutputOptions) error
}

// NewFeedWriter creates a feed writer for the specified format.
func NewFeedWriter(format OutputFormat) FeedWriter {
	switch format {
	case FormatRaw:
		return &RawFeedWriter{}
	case FormatJSON:
		return &JSONFeedWriter{}
	case FormatCSV:
		return &CSVFeedWriter{}
	case FormatMarkdown:
		return &MarkdownFeedWriter{}
	default:
		return &ConsoleFeedWriter{}
	}
}
