package jobs

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/lovey25/hobeom-portal-sub001/internal/activity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Worker struct {
	ID   string
	Repo *Repo
	DB   *gorm.DB
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				log.Printf("worker claim error: %v\n", err)
				continue
			}
			if job == nil {
				continue
			}
			w.handle(job)
		}
	}
}

func (w *Worker) handle(job *Job) {
	switch job.Type {
	case "ACTIVITY_RECORD":
		w.handleActivity(job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleActivity(job *Job) {
	var p activityPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}
	if p.EventID == "" {
		_ = w.Repo.MarkFailed(job.ID, "missing event_id")
		return
	}

	ev := activity.Event{
		EventID:     p.EventID,
		UserID:      job.UserID,
		Kind:        p.Kind,
		Description: p.Description,
		SourceAppID: p.SourceAppID,
	}
	// DoNothing on event_id keeps redelivery after a lost ack harmless.
	if err := w.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&ev).Error; err != nil {
		w.retry(job, "db write error")
		return
	}

	log.Printf("[ACTIVITY] user=%d kind=%s desc=%q\n", job.UserID, p.Kind, p.Description)
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
