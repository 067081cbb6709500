package importqueue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/common"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

const (
	DefaultMaxBatchFiles = 5
	DefaultWorkers       = 3
)

// Processor drives items through text extraction, the optional AI draft and
// evaluation, and hands confirmed records to the Saver.
type Processor struct {
	logger *slog.Logger
	text   TextExtractor
	draft  DraftExtractor
	saver  Saver

	workers              int
	batchSize            int
	minDraftFields       int
	maxWarnings          int
	tripDestination      string
	fallbackOnDraftError bool
}

type Option func(*Processor)

func WithDraftExtractor(d DraftExtractor) Option {
	return func(p *Processor) { p.draft = d }
}

func WithSaver(s Saver) Option {
	return func(p *Processor) { p.saver = s }
}

func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithBatchSize caps how many pending items one RunBatch call starts.
func WithBatchSize(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

func WithMinDraftFields(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minDraftFields = n
		}
	}
}

func WithMaxWarnings(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxWarnings = n
		}
	}
}

func WithTripDestination(dest string) Option {
	return func(p *Processor) { p.tripDestination = strings.TrimSpace(dest) }
}

// WithFallbackOnDraftError evaluates from text alone when the AI call fails
// instead of failing the item.
func WithFallbackOnDraftError(enabled bool) Option {
	return func(p *Processor) { p.fallbackOnDraftError = enabled }
}

func NewProcessor(text TextExtractor, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:         logger,
		text:           text,
		workers:        DefaultWorkers,
		batchSize:      DefaultMaxBatchFiles,
		minDraftFields: DefaultMinDraftFields,
		maxWarnings:    DefaultMaxWarnings,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// BatchResult summarizes one RunBatch call.
type BatchResult struct {
	BatchID           string
	Started           int
	NeedsConfirmation int
	AutoExtracted     int
	Failed            int
	Deferred          int
}

// Process moves a pending or failed item into processing and runs it. The
// returned error is only ever a transition error; collaborator failures are
// reported through the item's status and warnings.
func (p *Processor) Process(ctx context.Context, item Item) (Item, error) {
	item = item.clone()
	if err := item.Transition(constants.StatusProcessing); err != nil {
		return item, err
	}
	item.Attempts++
	return p.run(ctx, item), nil
}

// RunBatch processes up to the batch size of pending items with bounded
// concurrency. Once ctx is cancelled no further item is started; items that
// already finished keep their results. The context error is returned.
func (p *Processor) RunBatch(ctx context.Context, q *Queue) (BatchResult, error) {
	res := BatchResult{BatchID: uuid.NewString()}
	ctx = common.WithBatchID(ctx, res.BatchID)

	pending := q.Pending()
	if len(pending) > p.batchSize {
		res.Deferred = len(pending) - p.batchSize
		pending = pending[:p.batchSize]
	}
	start := time.Now()
	p.logger.Info("importqueue.batch.start", "batch_id", res.BatchID, "items", len(pending), "deferred", res.Deferred, "workers", p.workers)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, it := range pending {
		if gctx.Err() != nil {
			break
		}
		id := it.ID
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			claimed, err := q.claim(id)
			if err != nil {
				p.logger.Debug("importqueue.batch.skip", "batch_id", res.BatchID, "item_id", id, "err", err)
				return nil
			}
			done := p.run(gctx, claimed)
			q.put(done)

			mu.Lock()
			defer mu.Unlock()
			res.Started++
			switch done.Status {
			case constants.StatusNeedsConfirmation:
				res.NeedsConfirmation++
			case constants.StatusAutoExtracted:
				res.AutoExtracted++
			case constants.StatusFailed:
				res.Failed++
			}
			return nil
		})
	}
	_ = g.Wait()

	res.Deferred = len(q.Pending())
	p.logger.Info("importqueue.batch.done",
		"batch_id", res.BatchID,
		"started", res.Started,
		"needs_confirmation", res.NeedsConfirmation,
		"auto_extracted", res.AutoExtracted,
		"failed", res.Failed,
		"deferred", res.Deferred,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, ctx.Err()
}

// Reprocess re-runs a failed item from scratch, reusing its cached text.
func (p *Processor) Reprocess(ctx context.Context, q *Queue, id uuid.UUID) (Item, error) {
	claimed, err := q.update(id, func(it *Item) error {
		if it.Status != constants.StatusFailed {
			return fmt.Errorf("%w: reprocess needs a failed item, got %s", ErrInvalidTransition, it.Status)
		}
		if err := it.Transition(constants.StatusProcessing); err != nil {
			return err
		}
		it.Attempts++
		it.Record = nil
		it.Missing = nil
		return nil
	})
	if err != nil {
		return claimed, err
	}
	p.logger.Info("importqueue.reprocess.start", "item_id", id, "attempt", claimed.Attempts)
	done := p.run(ctx, claimed)
	q.put(done)
	return done, nil
}

// ChangeType applies a user-selected type to a reviewable item, dropping
// missing entries that belonged to the previous type.
func (p *Processor) ChangeType(q *Queue, id uuid.UUID, typ constants.ReservationType) (Item, error) {
	if !typ.Valid() {
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}
	return q.update(id, func(it *Item) error {
		if !it.Reviewable() || it.Record == nil {
			return fmt.Errorf("%w: cannot change type while %s", ErrInvalidTransition, it.Status)
		}
		from := it.Type
		rec := heuristics.Retype(it.Record, typ)
		rec.MissingFields = heuristics.MergeMissing(it.Missing, heuristics.ComputeMissing(typ, rec, it.Scope))
		it.Record = rec
		it.Type = typ
		it.Missing = rec.MissingFields

		ambiguous := heuristics.ScopeDecision{Scope: it.Scope, Source: it.ScopeSource}.Ambiguous()
		next := reviewStatus(it.Missing, rec.NeedsReview, ambiguous)
		if next != it.Status {
			if err := it.Transition(next); err != nil {
				return err
			}
		}
		p.logger.Info("importqueue.type.changed", "item_id", it.ID, "from", from, "to", typ, "missing", len(it.Missing))
		return nil
	})
}

// Confirm saves a reviewable item. edited, when non-nil, replaces the record
// after validation. A save failure leaves the item failed with a warning.
func (p *Processor) Confirm(ctx context.Context, q *Queue, id uuid.UUID, edited *entity.Record) (Item, error) {
	if p.saver == nil {
		return Item{}, ErrNoSaver
	}
	var rec *entity.Record
	saving, err := q.update(id, func(it *Item) error {
		if !it.Reviewable() {
			return fmt.Errorf("%w: cannot confirm while %s", ErrInvalidTransition, it.Status)
		}
		if edited != nil {
			if err := validateRecord(edited); err != nil {
				return err
			}
			it.Record = edited.Clone()
			it.Type = edited.Type
		}
		if it.Record == nil {
			return fmt.Errorf("%w: item has no record", ErrInvalidTransition)
		}
		rec = it.Record.Clone()
		return it.Transition(constants.StatusSaving)
	})
	if err != nil {
		return saving, err
	}

	if err := p.saver.Save(ctx, id, saving.Document.FileName, rec); err != nil {
		p.logger.Error("importqueue.save.failed", "item_id", id, "err", err)
		return q.update(id, func(it *Item) error {
			it.AddWarning(fmt.Sprintf("save failed: %v", err), p.maxWarnings)
			return it.Transition(constants.StatusFailed)
		})
	}
	p.logger.Info("importqueue.save.ok", "item_id", id, "type", rec.Type)
	return q.update(id, func(it *Item) error {
		return it.Transition(constants.StatusSaved)
	})
}

// run expects an item already in processing and always returns it in
// needs_confirmation, auto_extracted or failed.
func (p *Processor) run(ctx context.Context, item Item) Item {
	start := time.Now()
	log := p.logger.With("item_id", item.ID, "file", item.Document.FileName, "attempt", item.Attempts)
	if batchID := common.BatchIDFromContext(ctx); batchID != "" {
		log = log.With("batch_id", batchID)
	}

	if strings.TrimSpace(item.Document.Text) == "" {
		if p.text == nil {
			return p.fail(log, item, "text extraction failed: no text extractor configured")
		}
		res, err := p.text.ExtractText(ctx, item.Path)
		if err != nil {
			return p.fail(log, item, fmt.Sprintf("text extraction failed: %v", err))
		}
		if strings.TrimSpace(res.Text) == "" {
			return p.fail(log, item, fmt.Sprintf("text extraction failed: %v", ErrEmptyText))
		}
		item.Document.Text = res.Text
		item.TextMethod = res.Method
		for _, w := range res.Warnings {
			item.AddWarning(w, p.maxWarnings)
		}
		log.Debug("importqueue.text.ok", "method", res.Method, "pages", res.Pages, "confidence", res.Confidence)
	}

	var draft *entity.WeakDraft
	if p.draft != nil {
		d, err := p.draft.ExtractDraft(ctx, item.Document.Text, item.Document.FileName)
		switch {
		case err != nil && !p.fallbackOnDraftError:
			return p.fail(log, item, fmt.Sprintf("draft extraction failed: %v", err))
		case err != nil:
			item.AddWarning(fmt.Sprintf("draft extraction failed, using text only: %v", err), p.maxWarnings)
			log.Warn("importqueue.draft.failed", "err", err)
		default:
			draft = d
		}
	}

	out := Evaluate(item.Document, draft, EvalOptions{
		MinDraftFields:  p.minDraftFields,
		TripDestination: p.tripDestination,
	})
	item.Type = out.Type
	item.Scope = out.Scope
	item.ScopeSource = out.ScopeSource
	item.Record = out.Record
	item.Missing = out.Missing
	if out.UsedFallback && draft != nil {
		item.AddWarning("draft too sparse, fields rebuilt from text", p.maxWarnings)
	}
	if err := item.Transition(out.Status); err != nil {
		return p.fail(log, item, err.Error())
	}

	log.Info("importqueue.process.ok",
		"status", item.Status,
		"type", out.Type,
		"scope", out.Scope,
		"scope_source", out.ScopeSource,
		"fallback", out.UsedFallback,
		"missing", len(out.Missing),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return item
}

func (p *Processor) fail(log *slog.Logger, item Item, warning string) Item {
	item.AddWarning(warning, p.maxWarnings)
	if err := item.Transition(constants.StatusFailed); err != nil {
		log.Error("importqueue.process.transition", "err", err)
	}
	log.Warn("importqueue.process.failed", "warning", warning)
	return item
}

const maxDisplayName = 200

// validateRecord checks user edits before they reach the Saver.
func validateRecord(rec *entity.Record) error {
	v := common.NewValidator().
		Field("type", string(rec.Type), common.Required).
		Field("display_name", rec.DisplayName, common.MaxLength(maxDisplayName)).
		Field("currency", rec.Currency, common.CurrencyCode).
		Field("start_date", rec.StartDate, common.ISODate).
		Field("end_date", rec.EndDate, common.ISODate).
		Field("total_amount", rec.TotalAmount, common.NonNegativeAmount)
	if rec.Type != "" && !rec.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, rec.Type)
	}
	return common.ValidateAndReturnError(v)
}
