package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type gitNumstat struct {
	added   int
	deleted int
}

type gitLogHeader struct {
	sha       string
	parents   int
	when      time.Time
	committed time.Time
	author    AuthorInfo
	subject   string
}

// recordSeparator prefixes every commit header in the git log output.
const recordSeparator = 0x1e

func (r *HistoryReader) readCommitsGitCLI(ctx context.Context) ([]CommitRecord, error) {
	// Each commit header line is prefixed by 0x1e (record separator), then NUL-separated fields,
	// and ends with a newline. The --numstat -z entries of the commit follow it.
	const format = "%x1e%H%x00%P%x00%at%x00%ct%x00%an%x00%ae%x00%s%n"

	args := []string{
		"-C", r.opts.RepoPath,
		"log",
		"--no-color",
		"--date-order",
		"--pretty=format:" + format,
		"--numstat", "-z",
		"--no-renames",
		"--diff-merges=first-parent",
		"HEAD",
		"--",
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	var results []CommitRecord
	stopped := false
	br := bufio.NewReader(stdout)

	for !stopped {
		rec, readErr := br.ReadBytes(recordSeparator)
		rec = bytes.TrimSuffix(rec, []byte{recordSeparator})

		if len(bytes.TrimSpace(rec)) > 0 {
			record, decision, err := r.parseLogRecord(rec)
			if err != nil {
				cancel()
				_ = cmd.Wait()
				return results, err
			}
			switch decision {
			case decisionStop:
				stopped = true
			case decisionKeep:
				results = append(results, record)
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			cancel()
			_ = cmd.Wait()
			return results, readErr
		}
	}

	if stopped {
		// The rest of the history is not needed.
		cancel()
		_ = cmd.Wait()
		return results, nil
	}

	if err := cmd.Wait(); err != nil {
		return results, fmt.Errorf("git log failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return results, nil
}

func (r *HistoryReader) parseLogRecord(rec []byte) (CommitRecord, filterDecision, error) {
	header, body := splitHeaderBody(rec)

	h, err := parseLogHeader(header)
	if err != nil {
		return CommitRecord{}, decisionSkip, err
	}

	decision := r.filter.evaluate(h.when, h.committed, h.parents, h.author)
	if decision != decisionKeep {
		return CommitRecord{}, decision, nil
	}

	var insertions, deletions int
	if stats, err := parseGitNumstat(body); err == nil {
		for _, st := range stats {
			insertions += st.added
			deletions += st.deleted
		}
	}

	return CommitRecord{
		RepoPath:   r.opts.RepoPath,
		SHA:        h.sha,
		When:       h.when,
		Author:     h.author,
		Summary:    summaryLine(h.subject),
		Insertions: insertions,
		Deletions:  deletions,
	}, decisionKeep, nil
}

func splitHeaderBody(rec []byte) (header []byte, body []byte) {
	// The pretty line is followed by '\n', then diff output.
	if idx := bytes.IndexByte(rec, '\n'); idx != -1 {
		return rec[:idx], rec[idx+1:]
	}
	return rec, nil
}

func parseLogHeader(header []byte) (gitLogHeader, error) {
	fields := bytes.SplitN(header, []byte{0x00}, 7)
	if len(fields) < 7 {
		return gitLogHeader{}, errors.New("unexpected git log header format")
	}

	ts, err := strconv.ParseInt(string(fields[2]), 10, 64)
	if err != nil {
		return gitLogHeader{}, fmt.Errorf("parse author date: %w", err)
	}
	cts, err := strconv.ParseInt(string(fields[3]), 10, 64)
	if err != nil {
		return gitLogHeader{}, fmt.Errorf("parse committer date: %w", err)
	}

	return gitLogHeader{
		sha:       string(fields[0]),
		parents:   len(strings.Fields(string(fields[1]))),
		when:      time.Unix(ts, 0),
		committed: time.Unix(cts, 0),
		author:    AuthorInfo{Name: string(fields[4]), Email: string(fields[5])},
		subject:   string(fields[6]),
	}, nil
}

// parseGitNumstat parses `--numstat -z` entries: "ADDED\tDELETED\tPATH\0",
// or "ADDED\tDELETED\t\0OLD\0NEW\0" for renames and copies. Binary files
// report "-" counts, which are read as zero.
func parseGitNumstat(body []byte) ([]gitNumstat, error) {
	var stats []gitNumstat
	i := 0
	for {
		for i < len(body) && (body[i] == '\n' || body[i] == '\r' || body[i] == 0) {
			i++
		}
		if i >= len(body) {
			break
		}

		added, ok, err := readNumstatInt(body, &i, '\t')
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unexpected git --numstat format (added)")
		}

		deleted, ok, err := readNumstatInt(body, &i, '\t')
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unexpected git --numstat format (deleted)")
		}

		path, ok := readStringUntilNUL(body, &i)
		if !ok {
			// Last entry without a trailing NUL.
			i = len(body)
		} else if path == "" {
			if _, ok := readStringUntilNUL(body, &i); !ok {
				return nil, fmt.Errorf("unexpected git --numstat format (rename source)")
			}
			if _, ok := readStringUntilNUL(body, &i); !ok {
				return nil, fmt.Errorf("unexpected git --numstat format (rename target)")
			}
		}

		stats = append(stats, gitNumstat{added: added, deleted: deleted})
	}

	return stats, nil
}

func readUntilNUL(b []byte, i *int) ([]byte, bool) {
	if *i >= len(b) {
		return nil, false
	}
	j := bytes.IndexByte(b[*i:], 0)
	if j == -1 {
		return nil, false
	}
	start := *i
	end := *i + j
	*i = end + 1
	return b[start:end], true
}

func readStringUntilNUL(b []byte, i *int) (string, bool) {
	raw, ok := readUntilNUL(b, i)
	if !ok {
		return "", false
	}
	return string(raw), true
}

func readNumstatInt(b []byte, i *int, delim byte) (int, bool, error) {
	if *i >= len(b) {
		return 0, false, nil
	}
	j := bytes.IndexByte(b[*i:], delim)
	if j == -1 {
		return 0, false, nil
	}
	field := b[*i : *i+j]
	*i = *i + j + 1

	if len(field) == 1 && field[0] == '-' {
		return 0, true, nil
	}
	n, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, true, fmt.Errorf("parse numstat int %q: %w", string(field), err)
	}
	return n, true, nil
}
