package handler

import (
	"net/http"

	"github.com/lovey25/hobeom-portal-sub001/internal/auth"
)

type MeHandler struct{}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	writeData(w, http.StatusOK, map[string]any{
		"user_id": id.UserID,
		"role":    id.Role,
	})
}
