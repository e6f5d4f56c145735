package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	testAuthor  = AuthorInfo{Name: "Test User", Email: "test@example.com"}
	otherAuthor = AuthorInfo{Name: "Someone Else", Email: "else@example.com"}
)

// testRepo builds fixture repositories with go-git.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(rel, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add: %v", err)
	}
}

// commit writes a file unique to the commit and records it. Explicit
// parents make merge commits possible without checkouts.
func (r *testRepo) commit(msg string, author AuthorInfo, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	return r.rewrite(msg, author, when, when, parents...)
}

// rewrite records a commit whose author time differs from its committer
// time, as amend, rebase and cherry-pick produce.
func (r *testRepo) rewrite(msg string, author AuthorInfo, authored, committed time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.n++
	r.write(fmt.Sprintf("log/%03d.txt", r.n), msg+"\n")

	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:    &object.Signature{Name: author.Name, Email: author.Email, When: authored},
		Committer: &object.Signature{Name: author.Name, Email: author.Email, When: committed},
		Parents:   parents,
	})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return hash
}

func (r *testRepo) read(opts ReadOptions) []CommitRecord {
	r.t.Helper()
	opts.RepoPath = r.dir
	reader, err := NewHistoryReader(opts)
	if err != nil {
		r.t.Fatalf("NewHistoryReader: %v", err)
	}
	records, err := reader.ReadCommits(r.t.Context())
	if err != nil {
		r.t.Fatalf("ReadCommits: %v", err)
	}
	return records
}

func summaries(records []CommitRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Summary
	}
	return out
}
