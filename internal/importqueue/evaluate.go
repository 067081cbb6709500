package importqueue

import (
	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

// DefaultMinDraftFields is the identity score under which a draft is ignored.
const DefaultMinDraftFields = 2

type EvalOptions struct {
	MinDraftFields  int
	TripDestination string
}

// Outcome is everything one evaluation decided about a document.
type Outcome struct {
	Type         constants.ReservationType
	Scope        constants.Scope
	ScopeSource  heuristics.ScopeSource
	Record       *entity.Record
	Missing      []string
	Status       constants.ImportStatus
	UsedFallback bool
}

// Evaluate resolves type and scope, builds the record (promoted draft or text
// fallback), computes missing fields and picks the review status. It is pure.
func Evaluate(doc entity.RawDocument, draft *entity.WeakDraft, opts EvalOptions) Outcome {
	if draft.Empty() {
		draft = nil
	}
	typ := heuristics.ResolveType(draft, doc.Text, doc.FileName)
	decision := heuristics.DecideScope(draft, doc.Text, doc.FileName)

	out := Outcome{Type: typ, Scope: decision.Scope, ScopeSource: decision.Source}
	if heuristics.IsSparse(draft, typ, opts.MinDraftFields) {
		out.Record = heuristics.BuildFallbackFor(typ, doc.Text, doc.FileName, opts.TripDestination)
		out.UsedFallback = true
	} else {
		out.Record = heuristics.PromoteDraft(draft, typ, doc, opts.TripDestination)
	}
	out.Record.Scope = decision.Scope

	out.Missing = heuristics.MergeMissing(out.Record.MissingFields, heuristics.ComputeMissing(typ, out.Record, decision.Scope))
	out.Record.MissingFields = out.Missing
	out.Status = reviewStatus(out.Missing, out.Record.NeedsReview, decision.Ambiguous())
	return out
}

// reviewStatus never lets a low-confidence or ambiguous record skip confirmation.
func reviewStatus(missing []string, needsReview, ambiguousScope bool) constants.ImportStatus {
	if len(missing) > 0 || needsReview || ambiguousScope {
		return constants.StatusNeedsConfirmation
	}
	return constants.StatusAutoExtracted
}
