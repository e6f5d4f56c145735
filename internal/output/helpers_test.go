package output

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/masmgr/gitwork/internal/aggregation"
	"github.com/masmgr/gitwork/internal/git"
	"github.com/masmgr/gitwork/internal/window"
)

// disableColor turns off escape sequences for the duration of a test.
func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func testBase() string {
	return filepath.Join(string(filepath.Separator), "work")
}

func testWhen(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.Local)
}

func sampleReport(t *testing.T) *FeedReport {
	t.Helper()
	base := testBase()
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)
	w, err := window.Compute(window.ModeDays, 7, now)
	if err != nil {
		t.Fatalf("window.Compute: %v", err)
	}

	records := []git.CommitRecord{
		{
			RepoPath:   filepath.Join(base, "app"),
			SHA:        "abcdef0123456789abcdef0123456789abcdef01",
			When:       testWhen(10, 30),
			Author:     git.AuthorInfo{Name: "Test User", Email: "test@example.com"},
			Summary:    "Add parser",
			Insertions: 3,
			Deletions:  1,
		},
		{
			RepoPath:   filepath.Join(base, "libs", "core"),
			SHA:        "1234567890abcdef1234567890abcdef12345678",
			When:       testWhen(8, 5),
			Author:     git.AuthorInfo{Name: "Test User", Email: "test@example.com"},
			Summary:    "Fix | pipe_and *stars*",
			Insertions: 120,
			Deletions:  40,
		},
	}
	return &FeedReport{
		BaseDir:     base,
		Window:      w,
		GeneratedAt: now,
		Feed:        aggregation.BuildFeed(records, 50),
	}
}
