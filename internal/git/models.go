package git

import (
	"strings"
	"time"
)

// NoMessagePlaceholder is shown for commits without a message.
const NoMessagePlaceholder = "(no message)"

// ShortSHALength is the number of hex digits shown for abbreviated ids.
const ShortSHALength = 7

// CommitRecord is one harvested commit.
type CommitRecord struct {
	RepoPath   string
	SHA        string
	When       time.Time // author time
	Author     AuthorInfo
	Summary    string
	Insertions int
	Deletions  int
}

// Timestamp returns the author time in seconds since the epoch.
func (c CommitRecord) Timestamp() int64 {
	return c.When.Unix()
}

// ShortSHA returns the abbreviated commit id.
func (c CommitRecord) ShortSHA() string {
	if len(c.SHA) <= ShortSHALength {
		return c.SHA
	}
	return c.SHA[:ShortSHALength]
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// Identity is the caller's configured git identity. Empty fields are
// unknown; an identity with no fields matches every author.
type Identity struct {
	Name  string
	Email string
}

// IsZero reports whether neither name nor email is configured.
func (id Identity) IsZero() bool {
	return id.Name == "" && id.Email == ""
}

// Matches reports whether an author belongs to this identity: email
// compared case-insensitively first, then name compared exactly. Emails
// fold with Unicode simple case folding, which also covers every ASCII
// pair an ASCII-only comparison would accept.
func (id Identity) Matches(author AuthorInfo) bool {
	if id.IsZero() {
		return true
	}
	if id.Email != "" && author.Email != "" && strings.EqualFold(id.Email, author.Email) {
		return true
	}
	if id.Name != "" && author.Name != "" && id.Name == author.Name {
		return true
	}
	return false
}

// Backend selects the history reading implementation.
type Backend string

const (
	BackendGoGit  Backend = "go-git"
	BackendGitCLI Backend = "git-cli"
)

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath      string
	Since         time.Time
	Until         *time.Time // exclusive; nil means open-ended
	Identity      Identity
	IncludeMerges bool
	AllAuthors    bool
	Backend       Backend
}

// summaryLine returns the trimmed first line of a commit message.
func summaryLine(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return NoMessagePlaceholder
	}
	return message
}
