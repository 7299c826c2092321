package daily

import (
	"context"
	"fmt"
	"log"

	"github.com/lovey25/hobeom-portal-sub001/internal/activity"
)

// MilestoneInterval is the completion count step that earns an activity
// event (3, 6, 9, ...).
const MilestoneInterval = 3

const SourceAppID = "daily-tasks"

// Notifier emits an activity event each time a toggle lands the user's
// completed count exactly on a multiple of MilestoneInterval. It is
// fire-and-forget: recorder failures are logged and swallowed so a
// successful toggle never turns into a failed response. Not exactly-once
// under concurrent toggles (accepted, see DESIGN.md).
type Notifier struct {
	Recorder activity.Recorder
}

// OnToggleCompleted is called after a toggle that left the task
// completed, with the freshly recomputed completed count. One event at
// most per toggle; skipped multiples are not caught up.
func (n *Notifier) OnToggleCompleted(ctx context.Context, userID uint64, completedCount int) {
	if n == nil || n.Recorder == nil {
		return
	}
	if completedCount <= 0 || completedCount%MilestoneInterval != 0 {
		return
	}

	desc := fmt.Sprintf("Completed %d daily tasks today. Keep it up!", completedCount)
	if err := n.Recorder.Record(ctx, userID, activity.KindDailyMilestone, desc, SourceAppID); err != nil {
		log.Printf("milestone record failed: user=%d count=%d err=%v\n", userID, completedCount, err)
	}
}
