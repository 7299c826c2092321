package activity

import (
	"context"
	"time"
)

const KindDailyMilestone = "DAILY_MILESTONE"

// Event is one row of the portal's activity ledger. EventID is assigned
// at enqueue time so delivery retries cannot double-insert.
type Event struct {
	ID          uint64    `gorm:"primaryKey"`
	EventID     string    `gorm:"type:uuid;uniqueIndex;not null"`
	UserID      uint64    `gorm:"index;not null"`
	Kind        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	SourceAppID string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;default:now()"`
}

func (Event) TableName() string { return "activity_events" }

// Recorder accepts activity events best-effort; delivery is
// asynchronous from the caller's perspective.
type Recorder interface {
	Record(ctx context.Context, userID uint64, kind, description, sourceAppID string) error
}
