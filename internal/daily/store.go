package daily

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Store is the persistence contract for daily tracking. Implementations
// must give single-row atomicity on SaveLog/UpsertStat and multi-row
// atomicity on SwapTaskOrders; no cross-call locking is assumed, so two
// concurrent toggles of the same log row are last-write-wins (accepted,
// see DESIGN.md).
type Store interface {
	ActiveTasks(ctx context.Context, userID uint64) ([]Task, error)
	// ActiveTask returns ErrNotFound for foreign or inactive tasks.
	ActiveTask(ctx context.Context, userID, taskID uint64) (Task, error)
	CreateTask(ctx context.Context, t *Task) error
	SaveTask(ctx context.Context, t *Task) error
	// SwapTaskOrders exchanges the two tasks' sort orders atomically.
	SwapTaskOrders(ctx context.Context, userID, taskIDA, taskIDB uint64) error

	LogsForDate(ctx context.Context, userID uint64, date string) ([]CompletionLog, error)
	// LogFor returns (nil, nil) when no row exists yet.
	LogFor(ctx context.Context, userID, taskID uint64, date string) (*CompletionLog, error)
	SaveLog(ctx context.Context, l *CompletionLog) error

	// StatFor returns (nil, nil) when no row exists yet.
	StatFor(ctx context.Context, userID uint64, date string) (*DailyStat, error)
	UpsertStat(ctx context.Context, s *DailyStat) error
	// StatsInRange is inclusive on both bounds; empty bound means unbounded.
	StatsInRange(ctx context.Context, userID uint64, start, end string) ([]DailyStat, error)

	// StatusSummaries computes the live per-user completion view for a
	// date, optionally restricted to userIDs.
	StatusSummaries(ctx context.Context, date string, userIDs []uint64) ([]StatusSummary, error)
}
