package daily

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore implements Store on GORM/Postgres. Single-row writes
// ride on row-level atomicity; the reorder swap is the one multi-row
// write and runs in a transaction with both rows locked.
type PostgresStore struct {
	DB *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) ActiveTasks(ctx context.Context, userID uint64) ([]Task, error) {
	var tasks []Task
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_active", userID).
		Order("sort_order asc").
		Find(&tasks).Error
	return tasks, err
}

func (s *PostgresStore) ActiveTask(ctx context.Context, userID, taskID uint64) (Task, error) {
	var t Task
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active", taskID, userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Task{}, ErrNotFound
	}
	return t, err
}

func (s *PostgresStore) CreateTask(ctx context.Context, t *Task) error {
	return s.DB.WithContext(ctx).Create(t).Error
}

func (s *PostgresStore) SaveTask(ctx context.Context, t *Task) error {
	t.UpdatedAt = time.Now()
	return s.DB.WithContext(ctx).Save(t).Error
}

func (s *PostgresStore) SwapTaskOrders(ctx context.Context, userID, taskIDA, taskIDB uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pair []Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND id IN ? AND is_active", userID, []uint64{taskIDA, taskIDB}).
			Find(&pair).Error; err != nil {
			return err
		}
		if len(pair) != 2 {
			return ErrNotFound
		}

		// One statement so the swap cannot be observed half-done.
		return tx.Exec(`
update daily_tasks
set sort_order = case id when ? then ? when ? then ? end,
    updated_at = now()
where user_id = ? and id in (?, ?)`,
			pair[0].ID, pair[1].SortOrder,
			pair[1].ID, pair[0].SortOrder,
			userID, pair[0].ID, pair[1].ID,
		).Error
	})
}

func (s *PostgresStore) LogsForDate(ctx context.Context, userID uint64, date string) ([]CompletionLog, error) {
	var logs []CompletionLog
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, date).
		Order("task_id asc").
		Find(&logs).Error
	return logs, err
}

func (s *PostgresStore) LogFor(ctx context.Context, userID, taskID uint64, date string) (*CompletionLog, error) {
	var lg CompletionLog
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND log_date = ?", userID, taskID, date).
		First(&lg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lg, nil
}

func (s *PostgresStore) SaveLog(ctx context.Context, l *CompletionLog) error {
	l.UpdatedAt = time.Now()
	return s.DB.WithContext(ctx).Save(l).Error
}

func (s *PostgresStore) StatFor(ctx context.Context, userID uint64, date string) (*DailyStat, error) {
	var st DailyStat
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND stat_date = ?", userID, date).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PostgresStore) UpsertStat(ctx context.Context, st *DailyStat) error {
	st.UpdatedAt = time.Now()
	if st.ID != 0 {
		return s.DB.WithContext(ctx).Save(st).Error
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "stat_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_tasks", "completed_tasks", "completion_rate", "frozen", "updated_at",
		}),
	}).Create(st).Error
}

func (s *PostgresStore) StatsInRange(ctx context.Context, userID uint64, start, end string) ([]DailyStat, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if start != "" {
		q = q.Where("stat_date >= ?", start)
	}
	if end != "" {
		q = q.Where("stat_date <= ?", end)
	}
	var stats []DailyStat
	err := q.Order("stat_date asc").Find(&stats).Error
	return stats, err
}

type summaryRow struct {
	UserID         uint64
	Email          string
	TotalTasks     int
	CompletedTasks int
}

func (s *PostgresStore) StatusSummaries(ctx context.Context, date string, userIDs []uint64) ([]StatusSummary, error) {
	var rows []summaryRow
	err := s.DB.WithContext(ctx).Raw(`
select u.id as user_id,
       u.email,
       count(t.id) as total_tasks,
       count(l.id) filter (where l.is_completed) as completed_tasks
from users u
left join daily_tasks t on t.user_id = u.id and t.is_active
left join completion_logs l on l.user_id = u.id and l.task_id = t.id and l.log_date = ?
where (? = 0 or u.id = any(?))
group by u.id, u.email
order by u.id asc`,
		date, len(userIDs), pq.Array(userIDs),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]StatusSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatusSummary{
			UserID:         r.UserID,
			Email:          r.Email,
			TotalTasks:     r.TotalTasks,
			CompletedTasks: r.CompletedTasks,
			CompletionRate: Rate(r.CompletedTasks, r.TotalTasks),
		})
	}
	return out, nil
}
