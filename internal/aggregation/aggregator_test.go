package aggregation

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/masmgr/gitwork/internal/git"
)

// stubHarvester returns canned records per repository and tracks how many
// harvests run at once.
type stubHarvester struct {
	records map[string][]git.CommitRecord
	delay   time.Duration

	mu       sync.Mutex
	calls    []string
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *stubHarvester) Harvest(_ context.Context, repoPath string) []git.CommitRecord {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.calls = append(s.calls, repoPath)
	s.mu.Unlock()

	return s.records[repoPath]
}

func TestNewAggregator_DefaultWorkers(t *testing.T) {
	if got := NewAggregator(&stubHarvester{}, 0).Workers(); got != runtime.NumCPU() {
		t.Errorf("Workers = %d, expected %d", got, runtime.NumCPU())
	}
	if got := NewAggregator(&stubHarvester{}, 3).Workers(); got != 3 {
		t.Errorf("Workers = %d, expected 3", got)
	}
}

func TestAggregator_CollectHarvestsEveryRepository(t *testing.T) {
	h := &stubHarvester{records: map[string][]git.CommitRecord{
		"/r/a": {record("/r/a", 30, 1, 0), record("/r/a", 10, 1, 0)},
		"/r/b": nil,
		"/r/c": {record("/r/c", 20, 1, 0)},
	}}

	got := NewAggregator(h, 2).Collect(t.Context(), []string{"/r/a", "/r/b", "/r/c"})

	if len(h.calls) != 3 {
		t.Errorf("harvest calls = %v, expected 3", h.calls)
	}
	wantRepos := []string{"/r/a", "/r/a", "/r/c"}
	if len(got) != len(wantRepos) {
		t.Fatalf("got %d records, expected %d", len(got), len(wantRepos))
	}
	for i, rec := range got {
		if rec.RepoPath != wantRepos[i] {
			t.Errorf("[%d] repo = %q, expected %q", i, rec.RepoPath, wantRepos[i])
		}
	}
}

func TestAggregator_RespectsWorkerLimit(t *testing.T) {
	repos := []string{"/r/1", "/r/2", "/r/3", "/r/4", "/r/5", "/r/6"}
	h := &stubHarvester{delay: 10 * time.Millisecond}

	NewAggregator(h, 2).Collect(t.Context(), repos)

	if peak := h.peak.Load(); peak > 2 {
		t.Errorf("peak concurrency = %d, expected at most 2", peak)
	}
	if len(h.calls) != len(repos) {
		t.Errorf("harvest calls = %d, expected %d", len(h.calls), len(repos))
	}
}

func TestAggregator_Run(t *testing.T) {
	h := &stubHarvester{records: map[string][]git.CommitRecord{
		"/r/a": {record("/r/a", 400, 1, 1), record("/r/a", 100, 5, 5)},
		"/r/b": {record("/r/b", 300, 2, 0), record("/r/b", 200, 3, 0)},
	}}

	feed := NewAggregator(h, 4).Run(t.Context(), []string{"/r/a", "/r/b"}, 3)

	want := []int64{400, 300, 200}
	if len(feed.Commits) != len(want) {
		t.Fatalf("shown = %d, expected %d", len(feed.Commits), len(want))
	}
	for i, rec := range feed.Commits {
		if rec.Timestamp() != want[i] {
			t.Errorf("[%d] timestamp = %d, expected %d", i, rec.Timestamp(), want[i])
		}
	}
	if feed.TotalInsertions != 6 || feed.TotalDeletions != 1 {
		t.Errorf("totals = +%d -%d, expected +6 -1", feed.TotalInsertions, feed.TotalDeletions)
	}
	if feed.Matched != 4 {
		t.Errorf("Matched = %d, expected 4", feed.Matched)
	}
}
