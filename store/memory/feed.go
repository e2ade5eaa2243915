package memory

import (
	"sync"

	"github.com/xraph/clubsync/store"
)

const feedBuffer = 16

// feedHub fans replacement lists out to the live feeds of one
// collection. Slow consumers lose intermediate lists, never the most
// recent one.
type feedHub[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]*feedSub[T]
}

type feedSub[T any] struct {
	clubID  string
	updates chan []*T
	errs    chan error
}

func (h *feedHub[T]) subscribe(clubID string, initial []*T) *store.Feed[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = make(map[int]*feedSub[T])
	}
	key := h.next
	h.next++

	sub := &feedSub[T]{
		clubID:  clubID,
		updates: make(chan []*T, feedBuffer),
		errs:    make(chan error, 1),
	}
	sub.updates <- initial
	h.subs[key] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, key)
			close(sub.updates)
			close(sub.errs)
		})
	}

	return &store.Feed[T]{
		Updates: sub.updates,
		Errs:    sub.errs,
		Cancel:  cancel,
	}
}

// publish delivers a fresh list to every feed watching the club. A
// full buffer drops the oldest pending list to make room.
func (h *feedHub[T]) publish(clubID string, list []*T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if sub.clubID != clubID {
			continue
		}
		select {
		case sub.updates <- list:
		default:
			select {
			case <-sub.updates:
			default:
			}
			sub.updates <- list
		}
	}
}

// closeAll tears down every feed. Used on store close.
func (h *feedHub[T]) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, sub := range h.subs {
		delete(h.subs, key)
		close(sub.updates)
		close(sub.errs)
	}
}
