package heuristics

import (
	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// Scores holds the identity-field count per type plus the winner.
type Scores struct {
	ByType    map[constants.ReservationType]int
	Best      constants.ReservationType
	BestScore int
}

// ScoreTypes counts populated identity fields per type bag. Ties go to the
// earlier type in enumeration order. A nil draft scores zero everywhere.
func ScoreTypes(draft *entity.WeakDraft) Scores {
	s := Scores{ByType: make(map[constants.ReservationType]int, len(constants.ReservationTypes))}
	for i, t := range constants.ReservationTypes {
		n := draft.IdentityScore(t)
		s.ByType[t] = n
		if i == 0 || n > s.BestScore {
			s.Best, s.BestScore = t, n
		}
	}
	return s
}
