package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/outfit-service/internal/domain"
	"github.com/actuallystonmai/outfit-service/internal/outfit"
	"github.com/actuallystonmai/outfit-service/internal/repository"
)

type stubRecommender struct {
	got  outfit.Request
	resp *domain.OutfitResponse
	err  error
}

func (s *stubRecommender) Recommend(_ context.Context, req outfit.Request) (*domain.OutfitResponse, error) {
	s.got = req
	return s.resp, s.err
}

func post(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/outfits/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.RecommendOutfit(rec, req)
	return rec
}

func TestRecommendOutfitSuccess(t *testing.T) {
	stub := &stubRecommender{resp: &domain.OutfitResponse{
		Items:           []domain.ClothingItem{{ID: 1, SubCategory: "Topwear"}, {ID: 2, SubCategory: "Bottomwear"}},
		HarmonyScore:    87,
		SuggestionLogic: "High visual match for Casual in Summer",
		Alternatives:    []domain.OutfitSuggestion{},
	}}
	rec := post(t, NewHandler(stub), `{
		"user_id": "u1",
		"anchor_id": 5,
		"anchor_ids": [5, 6],
		"current_temperature": 22.5,
		"result_offset": 1,
		"constraints": {"usage": ["Casual"], "baseColour": ["Blue"]},
		"required_slots": ["Top", "Bottom", "Footwear"]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	assert.Equal(t, "u1", stub.got.UserID)
	require.NotNil(t, stub.got.AnchorID)
	assert.Equal(t, int64(5), *stub.got.AnchorID)
	assert.Equal(t, []int64{5, 6}, stub.got.AnchorIDs)
	require.NotNil(t, stub.got.Temperature)
	assert.InDelta(t, 22.5, *stub.got.Temperature, 0.001)
	assert.Equal(t, []string{"Casual"}, stub.got.Constraints.Usage)
	assert.Equal(t, []string{"Blue"}, stub.got.Constraints.BaseColour)
	assert.Equal(t, []string{"Top", "Bottom", "Footwear"}, stub.got.RequiredSlots)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 87, body["harmonyScore"], 0.001)
	assert.Equal(t, "High visual match for Casual in Summer", body["suggestionLogic"])
	assert.Len(t, body["items"], 2)
	assert.NotNil(t, body["alternatives"])
}

func TestRecommendOutfitEmptyShape(t *testing.T) {
	stub := &stubRecommender{resp: domain.EmptyOutfitResponse("No valid outfits found matching constraints.")}
	rec := post(t, NewHandler(stub), `{"user_id":"u1","constraints":{}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"items": [],
		"harmonyScore": 0,
		"suggestionLogic": "No valid outfits found matching constraints.",
		"alternatives": []
	}`, rec.Body.String())
}

func TestRecommendOutfitMissingUser(t *testing.T) {
	stub := &stubRecommender{}
	rec := post(t, NewHandler(stub), `{"constraints":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UserID is required")
	assert.Empty(t, stub.got.UserID)
}

func TestRecommendOutfitMalformedBody(t *testing.T) {
	rec := post(t, NewHandler(&stubRecommender{}), `{"user_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_body")
}

func TestRecommendOutfitEngineValidation(t *testing.T) {
	stub := &stubRecommender{err: &outfit.ValidationError{Field: "required_slots", Msg: `unknown slot "Hat"`}}
	rec := post(t, NewHandler(stub), `{"user_id":"u1","required_slots":["Hat"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "required_slots")
}

func TestRecommendOutfitStoreFailure(t *testing.T) {
	stub := &stubRecommender{err: &repository.StoreAccessError{
		Backend: "postgres", UserID: "u1", Err: errors.New("connection refused"),
	}}
	rec := post(t, NewHandler(stub), `{"user_id":"u1"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "connection refused")
	assert.Empty(t, body.Message)
}

func TestRecommendOutfitStoreTimeoutIsGenericFailure(t *testing.T) {
	stub := &stubRecommender{err: &repository.StoreAccessError{
		Backend: "postgres", UserID: "u1",
		Err: errors.Join(errors.New("query clothing items"), context.DeadlineExceeded),
	}}
	rec := post(t, NewHandler(stub), `{"user_id":"u1"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "deadline exceeded")
	assert.Empty(t, body.Message)
}
