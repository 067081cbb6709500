package importqueue

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/heuristics"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrItemNotFound      = errors.New("queue item not found")
	ErrEmptyText         = errors.New("extracted text is empty")
	ErrInvalidType       = errors.New("invalid reservation type")
	ErrNoSaver           = errors.New("no saver configured")
)

// DefaultMaxWarnings bounds Item.Warnings when no limit is configured.
const DefaultMaxWarnings = 5

// transitions is the import state graph. The two review states may swap
// when a type change re-evaluates the missing fields.
var transitions = map[constants.ImportStatus][]constants.ImportStatus{
	constants.StatusPending:           {constants.StatusProcessing},
	constants.StatusProcessing:        {constants.StatusNeedsConfirmation, constants.StatusAutoExtracted, constants.StatusFailed},
	constants.StatusNeedsConfirmation: {constants.StatusSaving, constants.StatusAutoExtracted},
	constants.StatusAutoExtracted:     {constants.StatusSaving, constants.StatusNeedsConfirmation},
	constants.StatusSaving:            {constants.StatusSaved, constants.StatusFailed},
	constants.StatusFailed:            {constants.StatusProcessing},
}

// Item is one uploaded file moving through the queue.
type Item struct {
	ID          uuid.UUID
	Path        string
	Document    entity.RawDocument
	Status      constants.ImportStatus
	Type        constants.ReservationType
	Scope       constants.Scope
	ScopeSource heuristics.ScopeSource
	Record      *entity.Record
	Missing     []string
	Warnings    []string
	Attempts    int
	TextMethod  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransition reports whether the graph allows from -> to.
func CanTransition(from, to constants.ImportStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the item to the next status or returns ErrInvalidTransition.
func (it *Item) Transition(to constants.ImportStatus) error {
	if !CanTransition(it.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, it.Status, to)
	}
	it.Status = to
	it.UpdatedAt = time.Now().UTC()
	return nil
}

// AddWarning appends a human readable warning, dropping the oldest past max.
func (it *Item) AddWarning(msg string, max int) {
	if max <= 0 {
		max = DefaultMaxWarnings
	}
	it.Warnings = append(it.Warnings, msg)
	if over := len(it.Warnings) - max; over > 0 {
		it.Warnings = append([]string(nil), it.Warnings[over:]...)
	}
}

// Reviewable reports whether the item waits on a user decision.
func (it Item) Reviewable() bool {
	return it.Status == constants.StatusNeedsConfirmation || it.Status == constants.StatusAutoExtracted
}

// clone returns a copy that shares no mutable state with it.
func (it Item) clone() Item {
	out := it
	out.Record = it.Record.Clone()
	out.Missing = append([]string(nil), it.Missing...)
	out.Warnings = append([]string(nil), it.Warnings...)
	return out
}
