package handler

import (
	"github.com/actuallystonmai/outfit-service/internal/domain"
	"github.com/actuallystonmai/outfit-service/internal/outfit"
)

// RecommendRequest is the wire shape of POST /outfits/recommend.
type RecommendRequest struct {
	UserID             string             `json:"user_id" validate:"required"`
	AnchorID           *int64             `json:"anchor_id,omitempty"`
	AnchorIDs          []int64            `json:"anchor_ids,omitempty"`
	CurrentTemperature *float64           `json:"current_temperature,omitempty"`
	ResultOffset       *int               `json:"result_offset,omitempty" validate:"omitempty,min=0"`
	Constraints        domain.Constraints `json:"constraints"`
	RequiredSlots      []string           `json:"required_slots,omitempty"`
}

func (r *RecommendRequest) toOutfitRequest() outfit.Request {
	return outfit.Request{
		UserID:        r.UserID,
		AnchorID:      r.AnchorID,
		AnchorIDs:     r.AnchorIDs,
		Temperature:   r.CurrentTemperature,
		ResultOffset:  r.ResultOffset,
		Constraints:   r.Constraints,
		RequiredSlots: r.RequiredSlots,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
