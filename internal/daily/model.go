package daily

import "time"

// Task is one recurring daily task. Owned by exactly one user; never
// hard-deleted while completion logs reference it (IsActive instead).
type Task struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"index;not null"`
	Label     string    `gorm:"type:text;not null"`
	SortOrder int       `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Task) TableName() string { return "daily_tasks" }

// CompletionLog records whether a task was completed on a given day.
// At most one row per (user, task, date); created lazily on first toggle.
type CompletionLog struct {
	ID          uint64     `gorm:"primaryKey"`
	UserID      uint64     `gorm:"not null;uniqueIndex:uq_logs_user_task_date"`
	TaskID      uint64     `gorm:"not null;uniqueIndex:uq_logs_user_task_date"`
	LogDate     string     `gorm:"type:date;not null;uniqueIndex:uq_logs_user_task_date"`
	IsCompleted bool       `gorm:"not null;default:false"`
	CompletedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt   time.Time  `gorm:"not null;default:now()"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()"`
}

func (CompletionLog) TableName() string { return "completion_logs" }

// DailyStat is the per-day rollup. Recomputed from logs on every toggle
// and frozen once when the day rolls over; Frozen is the persisted form
// of the rollover checkpoint.
type DailyStat struct {
	ID             uint64    `gorm:"primaryKey"`
	UserID         uint64    `gorm:"not null;uniqueIndex:uq_stats_user_date"`
	StatDate       string    `gorm:"type:date;not null;uniqueIndex:uq_stats_user_date"`
	TotalTasks     int       `gorm:"not null;default:0"`
	CompletedTasks int       `gorm:"not null;default:0"`
	CompletionRate float64   `gorm:"not null;default:0"`
	Frozen         bool      `gorm:"not null;default:false"`
	UpdatedAt      time.Time `gorm:"not null;default:now()"`
}

func (DailyStat) TableName() string { return "daily_stats" }

// StatusSummary is one row of the admin all-users view for a date.
type StatusSummary struct {
	UserID         uint64  `json:"user_id"`
	Email          string  `json:"email"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}
