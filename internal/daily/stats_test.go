package daily

import (
	"context"
	"testing"
)

func TestRate_Boundaries(t *testing.T) {
	cases := []struct {
		completed, total int
		want             float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{1, 3, 0.33},
		{2, 3, 0.67},
		{3, 3, 1},
		{1, 8, 0.13},
	}
	for _, c := range cases {
		if got := Rate(c.completed, c.total); got != c.want {
			t.Errorf("Rate(%d, %d) = %v, want %v", c.completed, c.total, got, c.want)
		}
	}
}

func TestAggregator_RecomputeMatchesLogs(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	book := &Logbook{Store: store}
	agg := &Aggregator{Store: store}
	tasks := seedTasks(t, reg, 1, "A", "B", "C")

	if _, err := book.Toggle(context.Background(), 1, tasks[0].ID, "2024-01-02"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := book.Toggle(context.Background(), 1, tasks[1].ID, "2024-01-02"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	st, err := agg.Recompute(context.Background(), 1, "2024-01-02")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if st.TotalTasks != 3 || st.CompletedTasks != 2 || st.CompletionRate != 0.67 {
		t.Fatalf("unexpected stat %+v", st)
	}
}

func TestAggregator_RecomputeIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	book := &Logbook{Store: store}
	agg := &Aggregator{Store: store}
	tasks := seedTasks(t, reg, 1, "A", "B")

	if _, err := book.Toggle(context.Background(), 1, tasks[0].ID, "2024-01-02"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	first, err := agg.Recompute(context.Background(), 1, "2024-01-02")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	second, err := agg.Recompute(context.Background(), 1, "2024-01-02")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	first.UpdatedAt = second.UpdatedAt
	if first != second {
		t.Fatalf("recompute not idempotent: %+v vs %+v", first, second)
	}

	// still one row for the date
	stats, err := agg.Range(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one stat row, got %d", len(stats))
	}
}

func TestAggregator_ZeroTasksNeverDivides(t *testing.T) {
	store := NewMemoryStore()
	agg := &Aggregator{Store: store}

	st, err := agg.Recompute(context.Background(), 7, "2024-03-01")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if st.TotalTasks != 0 || st.CompletedTasks != 0 || st.CompletionRate != 0 {
		t.Fatalf("expected all-zero stat, got %+v", st)
	}
}

func TestAggregator_RecomputePreservesFrozen(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	book := &Logbook{Store: store}
	agg := &Aggregator{Store: store}
	tasks := seedTasks(t, reg, 1, "A")

	if _, err := agg.Freeze(context.Background(), 1, "2024-01-01"); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	// a late toggle on the frozen date updates values, not the marker
	if _, err := book.Toggle(context.Background(), 1, tasks[0].ID, "2024-01-01"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	st, err := agg.Recompute(context.Background(), 1, "2024-01-01")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !st.Frozen {
		t.Fatalf("recompute dropped the frozen marker")
	}
	if st.CompletedTasks != 1 {
		t.Fatalf("recompute ignored the late toggle: %+v", st)
	}
}

func TestAggregator_RangeSortedAndBounded(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	book := &Logbook{Store: store}
	agg := &Aggregator{Store: store}
	tasks := seedTasks(t, reg, 1, "A")

	for _, d := range []string{"2024-01-03", "2024-01-01", "2024-01-05", "2024-01-02"} {
		if _, err := book.Toggle(context.Background(), 1, tasks[0].ID, d); err != nil {
			t.Fatalf("toggle %s: %v", d, err)
		}
		if _, err := agg.Recompute(context.Background(), 1, d); err != nil {
			t.Fatalf("recompute %s: %v", d, err)
		}
	}

	all, err := agg.Range(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 stats, got %d", len(all))
	}
	seen := map[string]bool{}
	for i := 1; i < len(all); i++ {
		if all[i-1].StatDate >= all[i].StatDate {
			t.Fatalf("stats not sorted ascending: %s before %s", all[i-1].StatDate, all[i].StatDate)
		}
	}
	for _, st := range all {
		if seen[st.StatDate] {
			t.Fatalf("duplicate date %s", st.StatDate)
		}
		seen[st.StatDate] = true
	}

	window, err := agg.Range(context.Background(), 1, "2024-01-02", "2024-01-03")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(window) != 2 || window[0].StatDate != "2024-01-02" || window[1].StatDate != "2024-01-03" {
		t.Fatalf("inclusive window wrong: %+v", window)
	}

	from, err := agg.Range(context.Background(), 1, "2024-01-03", "")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(from) != 2 {
		t.Fatalf("open-ended range wrong: %+v", from)
	}
}
