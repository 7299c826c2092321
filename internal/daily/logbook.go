package daily

import (
	"context"
	"time"
)

// Logbook records per-day task completion. Toggle is a read-modify-write
// of one logical row; concurrent toggles of the same row are
// last-write-wins (accepted race, see DESIGN.md), toggles of different
// rows never conflict.
type Logbook struct {
	Store Store
	Now   func() time.Time // nil means time.Now
}

func (b *Logbook) LogsForDate(ctx context.Context, userID uint64, date string) ([]CompletionLog, error) {
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return b.Store.LogsForDate(ctx, userID, date)
}

// Toggle flips the completion state of (user, task, date), creating the
// row as completed on first toggle.
func (b *Logbook) Toggle(ctx context.Context, userID, taskID uint64, date string) (CompletionLog, error) {
	date, err := ParseDate(date)
	if err != nil {
		return CompletionLog{}, err
	}
	if _, err := b.Store.ActiveTask(ctx, userID, taskID); err != nil {
		return CompletionLog{}, err
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	lg, err := b.Store.LogFor(ctx, userID, taskID, date)
	if err != nil {
		return CompletionLog{}, err
	}
	if lg == nil {
		ts := now()
		lg = &CompletionLog{
			UserID:      userID,
			TaskID:      taskID,
			LogDate:     date,
			IsCompleted: true,
			CompletedAt: &ts,
		}
	} else if lg.IsCompleted {
		lg.IsCompleted = false
		lg.CompletedAt = nil
	} else {
		ts := now()
		lg.IsCompleted = true
		lg.CompletedAt = &ts
	}

	if err := b.Store.SaveLog(ctx, lg); err != nil {
		return CompletionLog{}, err
	}
	return *lg, nil
}
