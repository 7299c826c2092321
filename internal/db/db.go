package db

import (
	"fmt"

	"github.com/lovey25/hobeom-portal-sub001/internal/activity"
	"github.com/lovey25/hobeom-portal-sub001/internal/auth"
	"github.com/lovey25/hobeom-portal-sub001/internal/daily"
	"github.com/lovey25/hobeom-portal-sub001/internal/jobs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&daily.Task{},
		&daily.CompletionLog{},
		&daily.DailyStat{},
		&activity.Event{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// Helpful indexes. Uniqueness of (user, task, date) logs and
	// (user, date) stats comes from the gorm uniqueIndex tags; order
	// distinctness among active tasks is enforced by the swap
	// transaction, not a partial unique index, because the swap's two
	// rows would trip a per-statement check.
	stmts := []string{
		`create index if not exists idx_daily_tasks_user_active on daily_tasks(user_id, is_active, sort_order);`,
		`create index if not exists idx_logs_user_date on completion_logs(user_id, log_date);`,
		`create index if not exists idx_stats_user_date on daily_stats(user_id, stat_date);`,
		`create index if not exists idx_activity_user_created on activity_events(user_id, created_at desc);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
