package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/outfit-service/internal/logging"
	"github.com/actuallystonmai/outfit-service/internal/outfit"
	"github.com/actuallystonmai/outfit-service/internal/validation"
)

const maxBodyBytes = 1 << 20

// POST /outfits/recommend
func (h *Handler) RecommendOutfit(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be a JSON object")
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", verr.Error())
		return
	}

	resp, err := h.service.Recommend(r.Context(), req.toOutfitRequest())
	if err != nil {
		var verr *outfit.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", verr.Error())
			return
		}
		logger := logging.Ctx(r.Context(), logging.Component("handler"))
		logger.Error().Err(err).Msg("recommend failed")
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
