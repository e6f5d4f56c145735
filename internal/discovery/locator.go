package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RepositoryMarker is the entry whose presence marks a repository root.
// It may be a directory or, for worktrees and submodules, a file.
const RepositoryMarker = ".git"

// DefaultMaxDepth is how many levels below the base directory are searched.
const DefaultMaxDepth = 3

// ErrNoRepositories is returned when a scan finds no repository roots.
var ErrNoRepositories = errors.New("no git repositories found")

// Options configures a repository scan.
type Options struct {
	MaxDepth int      // 0 scans the base directory only
	Exclude  []string // Glob patterns (relative to base) for directories to prune
}

// Canonicalize returns the absolute, symlink-free form of path.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot access '%s': %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access '%s': %w", path, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot access '%s': %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot access '%s': not a directory", path)
	}
	return resolved, nil
}

// FindRepositories returns the repository roots under base, sorted
// lexicographically. Repository roots are not descended into, symlinked
// directories are never followed and unreadable directories are skipped.
func FindRepositories(base string, opts Options) ([]string, error) {
	if _, err := os.Stat(base); err != nil {
		return nil, fmt.Errorf("cannot access '%s': %w", base, err)
	}

	s := &scanner{base: base, opts: opts}
	s.walk(base, 0)
	sort.Strings(s.repos)

	if len(s.repos) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRepositories, base)
	}
	return s.repos, nil
}

type scanner struct {
	base  string
	opts  Options
	repos []string
}

func (s *scanner) walk(dir string, depth int) {
	if depth > s.opts.MaxDepth {
		return
	}
	if isRepositoryRoot(dir) {
		s.repos = append(s.repos, dir)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		// DirEntry types come from Lstat, so symlinks never report IsDir.
		if !entry.IsDir() || entry.Type()&os.ModeSymlink != 0 {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if s.excluded(path) {
			continue
		}
		s.walk(path, depth+1)
	}
}

func (s *scanner) excluded(path string) bool {
	if len(s.opts.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(s.base, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range s.opts.Exclude {
		pattern = strings.TrimSuffix(strings.ReplaceAll(pattern, "\\", "/"), "/")
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func isRepositoryRoot(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, RepositoryMarker))
	return err == nil
}
