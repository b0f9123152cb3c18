// Package notifier fans committed seating changes out to in-process subscribers.
//
// Each subscriber owns an ordered queue drained by its own goroutine, so a slow
// or failing callback never holds up Publish or other subscribers. Events carry
// a hub-wide sequence number; an event older than one already published for the
// same entity is dropped. A subscriber that falls more than MaxPending events
// behind gets one EventResync in place of its backlog and stays subscribed.
package notifier

import (
	"fmt"
	"sync"
	"time"

	"seatq/config"
	tableModel "seatq/internal/domains/table/model"
	waitModel "seatq/internal/domains/waitlist/model"
	"seatq/shared/timezone"

	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventEntryCreated  EventType = "entry.created"
	EventEntryAssigned EventType = "entry.assigned"
	EventEntryRemoved  EventType = "entry.removed"
	EventEntryReleased EventType = "entry.released"
	EventTableUpdated  EventType = "table.updated"
	// EventResync replaces events a subscriber fell too far behind to receive.
	// Anything derived from earlier events should be re-read from the store.
	EventResync EventType = "resync"
)

const (
	defaultMaxPending = 1024
	// retainFinished is how many finished entries keep their last version for
	// stale event detection. Older ones are forgotten.
	retainFinished = 4096
)

type Event struct {
	Seq        uint64
	Type       EventType
	Entry      *waitModel.Entry
	Table      *tableModel.Table
	OccurredAt time.Time
}

func EntryEvent(eventType EventType, entry waitModel.Entry) Event {
	return Event{Type: eventType, Entry: &entry}
}

func TableEvent(table tableModel.Table) Event {
	return Event{Type: EventTableUpdated, Table: &table}
}

// TableFreed reports whether the event moved a table to available.
func (e Event) TableFreed() bool {
	return e.Type == EventTableUpdated && e.Table != nil && e.Table.Status == tableModel.StatusAvailable
}

// Resync reports whether earlier events were dropped for this subscriber.
func (e Event) Resync() bool {
	return e.Type == EventResync
}

// finished reports an entry that will not change again: removed, or seated
// at a table that has since been freed.
func (e Event) finished() bool {
	if e.Entry == nil {
		return false
	}

	return e.Entry.Status == waitModel.StatusRemoved ||
		(e.Entry.Status == waitModel.StatusAssigned && e.Entry.ReleasedAt != nil)
}

func (e Event) key() (string, int64) {
	switch {
	case e.Entry != nil:
		return "entry:" + e.Entry.ID, e.Entry.Version
	case e.Table != nil:
		return "table:" + e.Table.ID, e.Table.Version
	default:
		return "", 0
	}
}

type (
	Callback func(Event)
	Handle   uint64
)

type Notifier interface {
	Publish(events ...Event)
	Subscribe(cb Callback) Handle
	Unsubscribe(handle Handle)
	Close()
}

type hub struct {
	mu          sync.Mutex
	seq         uint64
	next        Handle
	closed      bool
	maxPending  int
	versions    map[string]int64
	finished    []string
	oldest      int
	subscribers map[Handle]*subscriber
}

func New(cfg *config.Config) Notifier {
	maxPending := cfg.Notifier.MaxPending
	if maxPending <= 0 {
		maxPending = defaultMaxPending
	}

	return &hub{
		maxPending:  maxPending,
		versions:    map[string]int64{},
		subscribers: map[Handle]*subscriber{},
	}
}

func (h *hub) Publish(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	accepted := make([]Event, 0, len(events))

	for _, event := range events {
		key, version := event.key()
		if key == "" {
			continue
		}

		if last, ok := h.versions[key]; ok && version <= last {
			continue
		}

		h.versions[key] = version
		if event.finished() {
			h.retire(key)
		}

		h.seq++

		event.Seq = h.seq
		if event.OccurredAt.IsZero() {
			event.OccurredAt = timezone.Now()
		}

		accepted = append(accepted, event)
	}

	if len(accepted) == 0 {
		return
	}

	for handle, sub := range h.subscribers {
		if sub.push(accepted, h.maxPending) {
			log.Warn().Uint64("subscriber", uint64(handle)).Int("max_pending", h.maxPending).Msg("Subscriber backlog full, replaced with resync")
		}
	}
}

// retire bounds versions: only the last retainFinished finished entries are
// remembered. Live entries and tables are always kept.
func (h *hub) retire(key string) {
	if len(h.finished) < retainFinished {
		h.finished = append(h.finished, key)

		return
	}

	delete(h.versions, h.finished[h.oldest])
	h.finished[h.oldest] = key
	h.oldest = (h.oldest + 1) % len(h.finished)
}

func (h *hub) Subscribe(cb Callback) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0
	}

	h.next++

	sub := &subscriber{
		handle: h.next,
		cb:     cb,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	h.subscribers[sub.handle] = sub

	go sub.run()

	return sub.handle
}

// Unsubscribe never waits for an in-flight callback, so a callback may
// unsubscribe itself.
func (h *hub) Unsubscribe(handle Handle) {
	h.mu.Lock()
	sub, ok := h.subscribers[handle]
	delete(h.subscribers, handle)
	h.mu.Unlock()

	if ok {
		sub.stop()
	}
}

func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for handle, sub := range h.subscribers {
		delete(h.subscribers, handle)
		sub.stop()
	}
}

type subscriber struct {
	handle Handle
	cb     Callback

	mu    sync.Mutex
	queue []Event

	signal   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// push queues events and reports whether the backlog had to be collapsed.
func (s *subscriber) push(events []Event, maxPending int) (collapsed bool) {
	s.mu.Lock()
	if len(s.queue)+len(events) > maxPending {
		last := events[len(events)-1]
		s.queue = []Event{{Seq: last.Seq, Type: EventResync, OccurredAt: last.OccurredAt}}
		collapsed = true
	} else {
		s.queue = append(s.queue, events...)
	}
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}

	return collapsed
}

func (s *subscriber) drain() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.queue
	s.queue = nil

	return batch
}

func (s *subscriber) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *subscriber) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *subscriber) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.signal:
		}

		for _, event := range s.drain() {
			if s.stopped() {
				return
			}

			s.deliver(event)
		}
	}
}

func (s *subscriber) deliver(event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("%v", r)).Uint64("subscriber", uint64(s.handle)).Uint64("seq", event.Seq).Msg("Subscriber callback panicked")
		}
	}()

	s.cb(event)
}
