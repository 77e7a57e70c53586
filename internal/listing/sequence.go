package listing

import (
	"sync"
	"sync/atomic"
)

// Ticket identifies one issued fetch. Tickets increase monotonically per Sequencer.
type Ticket uint64

// Sequencer tags fetches so that only the latest one may update the screen.
// A slow response to an older fetch arriving after a newer fetch was issued is stale.
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a new ticket, superseding every earlier one.
func (s *Sequencer) Next() Ticket {
	return Ticket(s.last.Add(1))
}

// Latest reports whether t is the most recently issued ticket.
func (s *Sequencer) Latest(t Ticket) bool {
	return uint64(t) == s.last.Load()
}

// Tracker holds the current listing and replaces it only with responses to
// the latest issued fetch. Safe for concurrent use.
type Tracker struct {
	seq Sequencer

	mu      sync.RWMutex
	current View
	loaded  bool
}

// Begin issues the ticket for a fetch about to start.
func (t *Tracker) Begin() Ticket { return t.seq.Next() }

// Latest reports whether ticket is the most recent fetch, e.g. before
// surfacing its error.
func (t *Tracker) Latest(ticket Ticket) bool { return t.seq.Latest(ticket) }

// Complete stores v if ticket is still the latest and reports whether it did.
func (t *Tracker) Complete(ticket Ticket, v View) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	// checked under the lock so a newer Complete cannot interleave
	if !t.seq.Latest(ticket) {
		return false
	}
	t.current = v
	t.loaded = true
	return true
}

// Current returns the last accepted listing and whether one was accepted yet.
func (t *Tracker) Current() (View, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.loaded
}
