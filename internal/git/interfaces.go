package git

import "context"

// RepositoryReader defines the interface for reading one repository's
// matching commits. This abstraction allows for easier testing and
// alternative backends.
type RepositoryReader interface {
	// ReadCommits returns the matching commits, newest first.
	ReadCommits(ctx context.Context) ([]CommitRecord, error)
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*HistoryReader)(nil)
