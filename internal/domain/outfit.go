package domain

type OutfitSuggestion struct {
	Items           []ClothingItem `json:"items"`
	HarmonyScore    int            `json:"harmonyScore"`
	SuggestionLogic string         `json:"suggestionLogic"`
}

type OutfitResponse struct {
	Items           []ClothingItem     `json:"items"`
	HarmonyScore    int                `json:"harmonyScore"`
	SuggestionLogic string             `json:"suggestionLogic"`
	Alternatives    []OutfitSuggestion `json:"alternatives"`
}

// EmptyOutfitResponse is the success shape returned when no outfit could be assembled.
func EmptyOutfitResponse(logic string) *OutfitResponse {
	return &OutfitResponse{
		Items:           []ClothingItem{},
		HarmonyScore:    0,
		SuggestionLogic: logic,
		Alternatives:    []OutfitSuggestion{},
	}
}
