package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type errorResponse struct {
	Errors []string `json:"errors"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("Failed to encode response", zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, status int, codes []string) {
	RespondWithJSON(w, status, errorResponse{Errors: codes})
}

// ParseUUIDs collects the id0..idN URL parameters as UUIDs.
// Returns false after writing a 400 response when a parameter is malformed.
func ParseUUIDs(w http.ResponseWriter, r *http.Request) (uuid.UUIDs, bool) {
	var ids uuid.UUIDs
	for i := 0; ; i++ {
		raw := chi.URLParam(r, fmt.Sprintf("id%d", i))
		if raw == "" {
			break
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondWithError(w, 400, []string{"INVALID_ID"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
