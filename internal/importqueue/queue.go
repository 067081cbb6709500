package importqueue

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/tripdocs/constants"
	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

// Queue is the caller-owned ordered collection of items. Reads hand out
// copies; writes go through the processor.
type Queue struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]*Item
}

func NewQueue() *Queue {
	return &Queue{items: make(map[uuid.UUID]*Item)}
}

// Add registers an upload as pending. doc.Text may be pre-filled to skip
// text extraction; a blank doc.FileName defaults to the path's base name.
func (q *Queue) Add(path string, doc entity.RawDocument) Item {
	if doc.FileName == "" {
		doc.FileName = filepath.Base(path)
	}
	now := time.Now().UTC()
	it := &Item{
		ID:        uuid.New(),
		Path:      path,
		Document:  doc,
		Status:    constants.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.items[it.ID] = it
	q.order = append(q.order, it.ID)
	return it.clone()
}

func (q *Queue) Get(id uuid.UUID) (Item, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	it, ok := q.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return it.clone(), nil
}

// Items returns a snapshot in insertion order.
func (q *Queue) Items() []Item {
	return q.filter(func(*Item) bool { return true })
}

// Pending returns the items a batch run would pick up, in insertion order.
func (q *Queue) Pending() []Item {
	return q.filter(func(it *Item) bool { return it.Status == constants.StatusPending })
}

func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.order)
}

// Counts tallies items per status.
func (q *Queue) Counts() map[constants.ImportStatus]int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make(map[constants.ImportStatus]int)
	for _, id := range q.order {
		out[q.items[id].Status]++
	}
	return out
}

func (q *Queue) filter(keep func(*Item) bool) []Item {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]Item, 0, len(q.order))
	for _, id := range q.order {
		if it := q.items[id]; keep(it) {
			out = append(out, it.clone())
		}
	}
	return out
}

// update applies fn to a working copy under the write lock and commits it
// only when fn succeeds.
func (q *Queue) update(id uuid.UUID, fn func(it *Item) error) (Item, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	cur, ok := q.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	work := cur.clone()
	if err := fn(&work); err != nil {
		return cur.clone(), err
	}
	q.items[id] = &work
	return work.clone(), nil
}

// claim atomically moves an item into processing so two runs never pick it up.
func (q *Queue) claim(id uuid.UUID) (Item, error) {
	return q.update(id, func(it *Item) error {
		if err := it.Transition(constants.StatusProcessing); err != nil {
			return err
		}
		it.Attempts++
		return nil
	})
}

func (q *Queue) put(it Item) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.items[it.ID]; !ok {
		return
	}
	c := it.clone()
	q.items[it.ID] = &c
}
