package aggregation

import (
	"fmt"
	"sort"

	"github.com/masmgr/gitwork/internal/git"
)

// DefaultLimit is the number of commits shown when no limit is configured.
const DefaultLimit = 50

// Feed is the merged, sorted activity across all repositories.
type Feed struct {
	Commits         []git.CommitRecord
	Matched         int // commits found before truncation
	TotalInsertions int
	TotalDeletions  int
}

// Truncated reports whether commits were dropped by the limit.
func (f Feed) Truncated() bool {
	return f.Matched > len(f.Commits)
}

// BuildFeed sorts records newest first, keeps at most limit of them and
// totals the churn of the kept records. A limit of zero or less keeps all.
// The input slice is reordered in place.
func BuildFeed(records []git.CommitRecord, limit int) Feed {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp() > records[j].Timestamp()
	})

	feed := Feed{Matched: len(records)}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	feed.Commits = records

	for _, rec := range records {
		feed.TotalInsertions += rec.Insertions
		feed.TotalDeletions += rec.Deletions
	}
	return feed
}

// NoCommitsError is returned when no repository produced a matching commit.
type NoCommitsError struct {
	Phrase           string // e.g. "the last 7 days"
	IdentityFiltered bool
}

func (e *NoCommitsError) Error() string {
	if e.IdentityFiltered {
		return fmt.Sprintf("no commits found for your identity in %s (try --all)", e.Phrase)
	}
	return fmt.Sprintf("no commits found in %s", e.Phrase)
}
