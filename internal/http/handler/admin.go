package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lovey25/hobeom-portal-sub001/internal/daily"
)

// AdminHandler serves admin-only views; the router gates it behind the
// admin role claim.
type AdminHandler struct {
	Store    daily.Store
	Resolver *daily.Resolver
}

// AllUsersStatus returns every user's live completion summary for a
// date, optionally filtered with ?user_ids=1,2,3.
func (h *AdminHandler) AllUsersStatus(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	resolved, err := h.Resolver.Today(date)
	if err != nil {
		writeDailyError(w, err)
		return
	}

	var userIDs []uint64
	if raw := strings.TrimSpace(r.URL.Query().Get("user_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id64, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid user_ids")
				return
			}
			userIDs = append(userIDs, id64)
		}
	}

	summaries, err := h.Store.StatusSummaries(r.Context(), resolved, userIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"date":  resolved,
		"users": summaries,
	})
}
