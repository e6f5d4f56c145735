package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// HistoryReader reads matching commits from one repository's HEAD.
type HistoryReader struct {
	repo   *git.Repository
	opts   ReadOptions
	filter commitFilter
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	if opts.Backend == "" {
		opts.Backend = BackendGoGit
	}

	r := &HistoryReader{opts: opts, filter: newCommitFilter(opts)}
	switch opts.Backend {
	case BackendGoGit:
		repo, err := git.PlainOpen(opts.RepoPath)
		if err != nil {
			return nil, err
		}
		r.repo = repo
	case BackendGitCLI:
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
	return r, nil
}

// ReadCommits walks history from HEAD, newest first, and returns the
// commits that pass the filter. On a mid-walk failure the records read
// so far are returned together with the error.
func (r *HistoryReader) ReadCommits(ctx context.Context) ([]CommitRecord, error) {
	if r.opts.Backend == BackendGitCLI {
		return r.readCommitsGitCLI(ctx)
	}
	return r.readCommitsGoGit(ctx)
}

func (r *HistoryReader) readCommitsGoGit(ctx context.Context) ([]CommitRecord, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, err
	}

	cIter, err := r.repo.Log(&git.LogOptions{
		From:  ref.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}
	defer cIter.Close()

	var results []CommitRecord

	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		author := AuthorInfo{Name: c.Author.Name, Email: c.Author.Email}
		switch r.filter.evaluate(c.Author.When, c.Committer.When, c.NumParents(), author) {
		case decisionStop:
			return storer.ErrStop
		case decisionSkip:
			return nil
		}

		insertions, deletions := commitStats(c)

		results = append(results, CommitRecord{
			RepoPath:   r.opts.RepoPath,
			SHA:        c.Hash.String(),
			When:       c.Author.When,
			Author:     author,
			Summary:    summaryLine(c.Message),
			Insertions: insertions,
			Deletions:  deletions,
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return results, err
	}

	return results, nil
}

// commitStats sums line changes against the first parent, or against the
// empty tree for a root commit. Any failure counts as no change.
func commitStats(c *object.Commit) (insertions, deletions int) {
	defer func() {
		if recover() != nil {
			insertions, deletions = 0, 0
		}
	}()

	stats, err := c.Stats()
	if err != nil {
		return 0, 0
	}
	for _, s := range stats {
		insertions += s.Addition
		deletions += s.Deletion
	}
	return insertions, deletions
}
