package heuristics

import (
	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// ResolveType combines draft field evidence with the text hint. Field counts
// win only when they are decisively stronger than a single keyword hint.
func ResolveType(draft *entity.WeakDraft, text, fileName string) constants.ReservationType {
	scores := ScoreTypes(draft)
	hint := ClassifyFromText(text, fileName)

	if scores.BestScore == 0 {
		return hint
	}
	if draft != nil && draft.Type.Valid() && scores.ByType[draft.Type] >= scores.BestScore-1 {
		return draft.Type
	}
	if scores.BestScore <= 1 {
		return hint
	}
	if hint != scores.Best && scores.BestScore <= 2 {
		return hint
	}
	return scores.Best
}
