package daily

import (
	"context"
	"testing"
	"time"
)

func newDetector(store Store) *Detector {
	return &Detector{
		Aggregator: &Aggregator{Store: store},
		Resolver:   &Resolver{Authority: AuthorityClient, Location: time.UTC},
	}
}

func TestDetector_FreezesPreviousDayExactlyOnce(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	book := &Logbook{Store: store}
	det := newDetector(store)
	tasks := seedTasks(t, reg, 1, "A", "B")

	if _, err := book.Toggle(context.Background(), 1, tasks[0].ID, "2024-01-01"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	today, rolled, err := det.CheckIn(context.Background(), 1, "2024-01-02", "2024-01-01")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if today != "2024-01-02" || !rolled {
		t.Fatalf("expected rollover on first check-in, got today=%s rolled=%v", today, rolled)
	}

	st, err := store.StatFor(context.Background(), 1, "2024-01-01")
	if err != nil || st == nil {
		t.Fatalf("expected frozen stat, got %v err=%v", st, err)
	}
	if !st.Frozen || st.TotalTasks != 2 || st.CompletedTasks != 1 {
		t.Fatalf("bad frozen stat %+v", st)
	}

	// second check-in with the same stale date must not re-freeze
	_, rolled, err = det.CheckIn(context.Background(), 1, "2024-01-02", "2024-01-01")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if rolled {
		t.Fatalf("second check-in re-froze the day")
	}

	stats, err := store.StatsInRange(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one stat row after repeat check-ins, got %d", len(stats))
	}
}

func TestDetector_NoToggleDayFreezesZeroCompletion(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	det := newDetector(store)
	seedTasks(t, reg, 1, "A", "B", "C")

	_, rolled, err := det.CheckIn(context.Background(), 1, "2024-01-02", "2024-01-01")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if !rolled {
		t.Fatalf("expected rollover")
	}

	st, _ := store.StatFor(context.Background(), 1, "2024-01-01")
	if st == nil || st.TotalTasks != 3 || st.CompletedTasks != 0 || st.CompletionRate != 0 {
		t.Fatalf("expected zero-completion freeze, got %+v", st)
	}
}

func TestDetector_SameDayIsNoop(t *testing.T) {
	store := NewMemoryStore()
	det := newDetector(store)

	_, rolled, err := det.CheckIn(context.Background(), 1, "2024-01-02", "2024-01-02")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if rolled {
		t.Fatalf("same-day check-in must not roll over")
	}

	// missing last access behaves the same
	_, rolled, err = det.CheckIn(context.Background(), 1, "2024-01-02", "")
	if err != nil || rolled {
		t.Fatalf("expected no-op, rolled=%v err=%v", rolled, err)
	}
}

func TestDetector_FutureLastAccessIgnored(t *testing.T) {
	store := NewMemoryStore()
	det := newDetector(store)

	_, rolled, err := det.CheckIn(context.Background(), 1, "2024-01-02", "2024-01-05")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if rolled {
		t.Fatalf("future last access must not freeze anything")
	}
	if st, _ := store.StatFor(context.Background(), 1, "2024-01-05"); st != nil {
		t.Fatalf("unexpected stat write %+v", st)
	}
}

func TestDetector_ServerAuthorityIgnoresClientDate(t *testing.T) {
	store := NewMemoryStore()
	det := newDetector(store)
	det.Resolver = &Resolver{
		Authority: AuthorityServer,
		Location:  time.UTC,
		Now:       func() time.Time { return time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC) },
	}

	today, rolled, err := det.CheckIn(context.Background(), 1, "1999-12-31", "2024-01-01")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if today != "2024-01-02" {
		t.Fatalf("server authority should own today, got %s", today)
	}
	if !rolled {
		t.Fatalf("expected rollover of 2024-01-01")
	}
}
