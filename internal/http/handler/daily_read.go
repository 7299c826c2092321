package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/lovey25/hobeom-portal-sub001/internal/auth"
	"github.com/lovey25/hobeom-portal-sub001/internal/daily"
)

// DailyReadHandler serves the check-in view and stat range queries.
type DailyReadHandler struct {
	Registry   *daily.Registry
	Logbook    *daily.Logbook
	Detector   *daily.Detector
	Aggregator *daily.Aggregator
}

type taskDTO struct {
	ID          uint64     `json:"id"`
	Label       string     `json:"label"`
	SortOrder   int        `json:"sort_order"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

func taskDTOFrom(t daily.Task, lg *daily.CompletionLog) taskDTO {
	dto := taskDTO{ID: t.ID, Label: t.Label, SortOrder: t.SortOrder}
	if lg != nil {
		dto.IsCompleted = lg.IsCompleted
		dto.CompletedAt = lg.CompletedAt
	}
	return dto
}

type todayDTO struct {
	Date           string    `json:"date"`
	Tasks          []taskDTO `json:"tasks"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	CompletionRate float64   `json:"completion_rate"`
	RolledOver     bool      `json:"rolled_over"`
}

// Today is the check-in endpoint. Rollover detection runs first: if
// last_access_date names an earlier day, that day's stat gets frozen
// before today's view is assembled.
func (h *DailyReadHandler) Today(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	lastAccess := strings.TrimSpace(r.URL.Query().Get("last_access_date"))

	today, rolled, err := h.Detector.CheckIn(r.Context(), id.UserID, date, lastAccess)
	if err != nil {
		writeDailyError(w, err)
		return
	}

	tasks, err := h.Registry.List(r.Context(), id.UserID)
	if err != nil {
		writeDailyError(w, err)
		return
	}
	logs, err := h.Logbook.LogsForDate(r.Context(), id.UserID, today)
	if err != nil {
		writeDailyError(w, err)
		return
	}

	byTask := make(map[uint64]*daily.CompletionLog, len(logs))
	for i := range logs {
		byTask[logs[i].TaskID] = &logs[i]
	}

	out := todayDTO{Date: today, Tasks: make([]taskDTO, 0, len(tasks)), RolledOver: rolled}
	completed := 0
	for _, t := range tasks {
		lg := byTask[t.ID]
		if lg != nil && lg.IsCompleted {
			completed++
		}
		out.Tasks = append(out.Tasks, taskDTOFrom(t, lg))
	}
	out.TotalTasks = len(tasks)
	out.CompletedTasks = completed
	out.CompletionRate = daily.Rate(completed, len(tasks))

	writeData(w, http.StatusOK, out)
}

// Stats answers inclusive range queries over the per-day rollups.
func (h *DailyReadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))

	stats, err := h.Aggregator.Range(r.Context(), id.UserID, start, end)
	if err != nil {
		writeDailyError(w, err)
		return
	}

	out := make([]statDTO, 0, len(stats))
	for _, st := range stats {
		out = append(out, statDTOFrom(st))
	}
	writeData(w, http.StatusOK, out)
}
