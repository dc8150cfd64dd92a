package notify

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"spotgarbage.org/internal/ids"
)

// Event is a toast fanned out to UI subscribers. The ID is a sortable ULID
// so consumers can deduplicate and order events across subscriptions.
type Event struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Stream fan-outs toast events to all active subscribers. Sends never block:
// a subscriber that falls behind loses events rather than stalling the store.
// A rate limiter caps broadcast bursts so a misbehaving caller cannot flood
// every subscriber.
type Stream struct {
	mu      sync.RWMutex
	subs    map[int]chan Event
	next    int
	limiter *rate.Limiter
	now     func() time.Time
}

// NewStream initialises an empty stream allowing up to perSec events per
// second (with equal burst). perSec <= 0 disables limiting.
func NewStream(perSec int) *Stream {
	s := &Stream{
		subs: make(map[int]chan Event),
		now:  time.Now,
	}
	if perSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(perSec), perSec)
	}
	return s
}

// Subscribe registers a new subscriber and returns its channel along with an
// unsubscribe function.
func (s *Stream) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Notify implements Sink by broadcasting the toast to every subscriber.
func (s *Stream) Notify(sev Severity, msg string) {
	if s.limiter != nil && !s.limiter.Allow() {
		return
	}
	ev := Event{ID: ids.New(), Severity: sev, Message: msg, Timestamp: s.now().UTC()}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
