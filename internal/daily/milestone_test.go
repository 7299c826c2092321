package daily

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type recordedEvent struct {
	UserID      uint64
	Kind        string
	Description string
	SourceAppID string
}

type fakeRecorder struct {
	events []recordedEvent
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, userID uint64, kind, description, sourceAppID string) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{userID, kind, description, sourceAppID})
	return nil
}

func TestNotifier_EmitsOnlyAtMultiplesOfThree(t *testing.T) {
	rec := &fakeRecorder{}
	n := &Notifier{Recorder: rec}

	for count := 1; count <= 5; count++ {
		n.OnToggleCompleted(context.Background(), 1, count)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected exactly one event through count 5, got %d", len(rec.events))
	}
	if !strings.Contains(rec.events[0].Description, "3") {
		t.Fatalf("event should embed the count, got %q", rec.events[0].Description)
	}
	if rec.events[0].SourceAppID != SourceAppID {
		t.Fatalf("wrong source app id %q", rec.events[0].SourceAppID)
	}

	n.OnToggleCompleted(context.Background(), 1, 6)
	if len(rec.events) != 2 {
		t.Fatalf("expected a second event at count 6, got %d", len(rec.events))
	}
}

func TestNotifier_ZeroAndNegativeCountsNeverEmit(t *testing.T) {
	rec := &fakeRecorder{}
	n := &Notifier{Recorder: rec}

	n.OnToggleCompleted(context.Background(), 1, 0)
	n.OnToggleCompleted(context.Background(), 1, -3)

	if len(rec.events) != 0 {
		t.Fatalf("expected no events, got %d", len(rec.events))
	}
}

func TestNotifier_RecorderFailureIsSwallowed(t *testing.T) {
	n := &Notifier{Recorder: &fakeRecorder{err: errors.New("sink down")}}

	// must not panic or propagate
	n.OnToggleCompleted(context.Background(), 1, 3)
}

func TestNotifier_NilRecorderIsSafe(t *testing.T) {
	var n *Notifier
	n.OnToggleCompleted(context.Background(), 1, 3)

	n = &Notifier{}
	n.OnToggleCompleted(context.Background(), 1, 3)
}

// Three tasks completed in sequence on one day emit exactly one event,
// carrying count 3; the 4th and 5th completions stay silent until 6.
func TestMilestone_ToggleSequenceScenario(t *testing.T) {
	store := NewMemoryStore()
	reg := &Registry{Store: store}
	book := &Logbook{Store: store}
	agg := &Aggregator{Store: store}
	rec := &fakeRecorder{}
	n := &Notifier{Recorder: rec}
	tasks := seedTasks(t, reg, 1, "T1", "T2", "T3", "T4", "T5")

	toggle := func(idx int) {
		t.Helper()
		lg, err := book.Toggle(context.Background(), 1, tasks[idx].ID, "2024-01-02")
		if err != nil {
			t.Fatalf("toggle %d: %v", idx, err)
		}
		st, err := agg.Recompute(context.Background(), 1, "2024-01-02")
		if err != nil {
			t.Fatalf("recompute: %v", err)
		}
		if lg.IsCompleted {
			n.OnToggleCompleted(context.Background(), 1, st.CompletedTasks)
		}
	}

	toggle(0)
	toggle(1)
	toggle(2)

	if len(rec.events) != 1 {
		t.Fatalf("expected one event after third completion, got %d", len(rec.events))
	}
	want := fmt.Sprintf("Completed %d daily tasks", 3)
	if !strings.Contains(rec.events[0].Description, want) {
		t.Fatalf("description %q should contain %q", rec.events[0].Description, want)
	}

	toggle(3)
	toggle(4)
	if len(rec.events) != 1 {
		t.Fatalf("counts 4 and 5 must not emit, got %d events", len(rec.events))
	}

	// unchecking back down to 3 must not re-emit either
	toggle(4)
	if len(rec.events) != 1 {
		t.Fatalf("un-toggle emitted an event")
	}
}
