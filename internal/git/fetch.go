package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FetchRemotes runs `git fetch --quiet --prune` in the repository using
// whatever credentials the user already has. Prompts are disabled so a
// repository that needs interactive auth fails instead of blocking.
func FetchRemotes(ctx context.Context, repoPath string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "fetch", "--quiet", "--prune")
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git fetch failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
