package daily

import (
	"context"
	"math"
)

// Rate is completed over total rounded to two decimals, 0 when total is 0.
func Rate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100) / 100
}

// Aggregator computes and persists per-day completion rollups. Recompute
// is a pure function of the current task list and log set, so repeated
// calls without intervening toggles are byte-identical and interrupted
// requests self-heal on the next write.
type Aggregator struct {
	Store Store
}

// Recompute rebuilds the stat for (user, date) from its logs and
// persists it. A Frozen marker already present on the row is preserved.
func (a *Aggregator) Recompute(ctx context.Context, userID uint64, date string) (DailyStat, error) {
	date, err := ParseDate(date)
	if err != nil {
		return DailyStat{}, err
	}

	stat, err := a.compute(ctx, userID, date)
	if err != nil {
		return DailyStat{}, err
	}

	prev, err := a.Store.StatFor(ctx, userID, date)
	if err != nil {
		return DailyStat{}, err
	}
	if prev != nil {
		stat.ID = prev.ID
		stat.Frozen = prev.Frozen
	}

	if err := a.Store.UpsertStat(ctx, &stat); err != nil {
		return DailyStat{}, err
	}
	return stat, nil
}

// Freeze writes the final stat for a rolled-over day exactly once.
// Returns false without rewriting when the day is already frozen; a day
// with no toggles still gets its zero-completion row.
func (a *Aggregator) Freeze(ctx context.Context, userID uint64, date string) (bool, error) {
	date, err := ParseDate(date)
	if err != nil {
		return false, err
	}

	prev, err := a.Store.StatFor(ctx, userID, date)
	if err != nil {
		return false, err
	}
	if prev != nil && prev.Frozen {
		return false, nil
	}

	stat, err := a.compute(ctx, userID, date)
	if err != nil {
		return false, err
	}
	if prev != nil {
		stat.ID = prev.ID
	}
	stat.Frozen = true

	if err := a.Store.UpsertStat(ctx, &stat); err != nil {
		return false, err
	}
	return true, nil
}

// Range returns stats in the inclusive [start, end] window, date
// ascending. Either bound may be empty for unbounded.
func (a *Aggregator) Range(ctx context.Context, userID uint64, start, end string) ([]DailyStat, error) {
	var err error
	if start != "" {
		if start, err = ParseDate(start); err != nil {
			return nil, err
		}
	}
	if end != "" {
		if end, err = ParseDate(end); err != nil {
			return nil, err
		}
	}
	return a.Store.StatsInRange(ctx, userID, start, end)
}

func (a *Aggregator) compute(ctx context.Context, userID uint64, date string) (DailyStat, error) {
	tasks, err := a.Store.ActiveTasks(ctx, userID)
	if err != nil {
		return DailyStat{}, err
	}
	logs, err := a.Store.LogsForDate(ctx, userID, date)
	if err != nil {
		return DailyStat{}, err
	}

	completed := 0
	for _, lg := range logs {
		if lg.IsCompleted {
			completed++
		}
	}

	return DailyStat{
		UserID:         userID,
		StatDate:       date,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		CompletionRate: Rate(completed, len(tasks)),
	}, nil
}
