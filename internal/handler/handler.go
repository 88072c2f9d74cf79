package handler

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/outfit-service/internal/domain"
	"github.com/actuallystonmai/outfit-service/internal/logging"
	"github.com/actuallystonmai/outfit-service/internal/outfit"
)

// Recommender produces one outfit response per request.
type Recommender interface {
	Recommend(ctx context.Context, req outfit.Request) (*domain.OutfitResponse, error)
}

type Handler struct {
	service Recommender
}

func NewHandler(svc Recommender) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("encode response")
	}
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
