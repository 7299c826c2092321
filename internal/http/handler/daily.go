package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/lovey25/hobeom-portal-sub001/internal/auth"
	"github.com/lovey25/hobeom-portal-sub001/internal/daily"

	"github.com/go-chi/chi/v5"
)

// DailyHandler serves the write side of daily tracking: task CRUD,
// reorder, and toggle.
type DailyHandler struct {
	Registry   *daily.Registry
	Logbook    *daily.Logbook
	Aggregator *daily.Aggregator
	Notifier   *daily.Notifier
}

func taskIDParam(r *http.Request) (uint64, bool) {
	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return id64, err == nil
}

type createTaskReq struct {
	Label string `json:"label"`
}

func (h *DailyHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req createTaskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	t, err := h.Registry.Create(r.Context(), id.UserID, req.Label)
	if err != nil {
		writeDailyError(w, err)
		return
	}
	writeData(w, http.StatusCreated, taskDTOFrom(t, nil))
}

func (h *DailyHandler) RenameTask(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req createTaskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	t, err := h.Registry.Rename(r.Context(), id.UserID, taskID, req.Label)
	if err != nil {
		writeDailyError(w, err)
		return
	}
	writeData(w, http.StatusOK, taskDTOFrom(t, nil))
}

func (h *DailyHandler) DeactivateTask(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Registry.Deactivate(r.Context(), id.UserID, taskID); err != nil {
		writeDailyError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

type reorderReq struct {
	Direction string `json:"direction"`
}

func (h *DailyHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req reorderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Direction = strings.TrimSpace(strings.ToLower(req.Direction))

	if err := h.Registry.Reorder(r.Context(), id.UserID, taskID, req.Direction); err != nil {
		writeDailyError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

type statDTO struct {
	Date           string  `json:"date"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
	Frozen         bool    `json:"frozen"`
}

func statDTOFrom(st daily.DailyStat) statDTO {
	return statDTO{
		Date:           st.StatDate,
		TotalTasks:     st.TotalTasks,
		CompletedTasks: st.CompletedTasks,
		CompletionRate: st.CompletionRate,
		Frozen:         st.Frozen,
	}
}

// Toggle flips one task's completion for a date, recomputes the day's
// stat, and (after the response-relevant work is done) lets the
// notifier emit its milestone. Notifier failures never fail the toggle.
func (h *DailyHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	taskID, ok := taskIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	lg, err := h.Logbook.Toggle(r.Context(), id.UserID, taskID, date)
	if err != nil {
		writeDailyError(w, err)
		return
	}

	st, err := h.Aggregator.Recompute(r.Context(), id.UserID, lg.LogDate)
	if err != nil {
		writeDailyError(w, err)
		return
	}

	if lg.IsCompleted {
		h.Notifier.OnToggleCompleted(r.Context(), id.UserID, st.CompletedTasks)
	}

	writeData(w, http.StatusOK, statDTOFrom(st))
}
