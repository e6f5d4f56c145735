package git

import (
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// --- Generators ---

func genAuthor() *rapid.Generator[AuthorInfo] {
	return rapid.Custom(func(t *rapid.T) AuthorInfo {
		return AuthorInfo{
			Name:  rapid.SampledFrom([]string{"", "Ada", "ada", "Bob"}).Draw(t, "name"),
			Email: rapid.SampledFrom([]string{"", "ada@example.com", "ADA@EXAMPLE.COM", "bob@example.com"}).Draw(t, "email"),
		}
	})
}

func genWhen() *rapid.Generator[time.Time] {
	return rapid.Custom(func(t *rapid.T) time.Time {
		return time.Unix(rapid.Int64Range(1700000000, 1800000000).Draw(t, "unix"), 0)
	})
}

// --- Property Tests ---

func TestRapidCommitFilter_KeptCommitsLieInWindow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		since := genWhen().Draw(t, "since")
		var until *time.Time
		if rapid.Bool().Draw(t, "bounded") {
			u := since.Add(time.Duration(rapid.Int64Range(1, 90*24*3600).Draw(t, "span")) * time.Second)
			until = &u
		}
		opts := ReadOptions{
			Since:         since,
			Until:         until,
			Identity:      Identity(genAuthor().Draw(t, "identity")),
			IncludeMerges: rapid.Bool().Draw(t, "merges"),
			AllAuthors:    rapid.Bool().Draw(t, "all"),
		}
		when := genWhen().Draw(t, "when")
		committed := genWhen().Draw(t, "committed")
		parents := rapid.IntRange(0, 3).Draw(t, "parents")
		author := genAuthor().Draw(t, "author")

		f := newCommitFilter(opts)
		switch f.evaluate(when, committed, parents, author) {
		case decisionKeep:
			if when.Before(since) || (until != nil && !when.Before(*until)) {
				t.Fatalf("kept %v outside [%v, %v)", when, since, until)
			}
			if !opts.IncludeMerges && parents > 1 {
				t.Fatalf("kept merge with %d parents", parents)
			}
		case decisionStop:
			if !committed.Before(since) {
				t.Fatalf("stopped at committer time %v which is not before since %v", committed, since)
			}
		}
	})
}

func TestRapidIdentity_EmailCaseInsensitiveNameExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := Identity(genAuthor().Draw(t, "identity"))
		author := genAuthor().Draw(t, "author")

		want := id.IsZero() ||
			(id.Email != "" && author.Email != "" && strings.EqualFold(id.Email, author.Email)) ||
			(id.Name != "" && author.Name != "" && id.Name == author.Name)

		if got := id.Matches(author); got != want {
			t.Fatalf("%#v.Matches(%#v) = %v, want %v", id, author, got, want)
		}
	})
}
