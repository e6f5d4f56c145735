package git

import (
	"time"

	"github.com/masmgr/gitwork/internal/window"
)

type filterDecision int

const (
	decisionKeep filterDecision = iota
	decisionSkip
	decisionStop
)

// commitFilter applies the window, merge and author rules shared by all
// backends. The walk is ordered by committer time, so only a committer
// time older than Since ends it; the window itself is checked against
// author time, which amend and rebase leave behind.
type commitFilter struct {
	window        window.Window
	identity      Identity
	includeMerges bool
	allAuthors    bool
}

func newCommitFilter(opts ReadOptions) commitFilter {
	return commitFilter{
		window:        window.Window{Since: opts.Since, Until: opts.Until},
		identity:      opts.Identity,
		includeMerges: opts.IncludeMerges,
		allAuthors:    opts.AllAuthors,
	}
}

func (f commitFilter) evaluate(authored, committed time.Time, parents int, author AuthorInfo) filterDecision {
	if committed.Before(f.window.Since) {
		return decisionStop
	}
	if !f.window.Contains(authored) {
		return decisionSkip
	}
	if !f.includeMerges && parents > 1 {
		return decisionSkip
	}
	if !f.allAuthors && !f.identity.Matches(author) {
		return decisionSkip
	}
	return decisionKeep
}
