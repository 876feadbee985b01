// Package events carries notifications about committed board activity to
// interested parties outside the request.
package events

import (
	"context"
	"sync"
	"time"
)

// FeedCreated is emitted for every feed entry the engine writes.
const FeedCreated = "feed.created"

type Event struct {
	Type    string    `json:"type"`
	BoardID int64     `json:"board_id,omitempty"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Bus fans events out to in-process subscribers. Slow subscribers miss events
// rather than block the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[int64]map[chan Event]struct{}
}

func NewBus() *Bus { return &Bus{subs: make(map[int64]map[chan Event]struct{})} }

// Subscribe registers for events of one board; boardID 0 receives every event.
func (b *Bus) Subscribe(boardID int64) (ch chan Event, cancel func()) {
	ch = make(chan Event, 16)
	b.mu.Lock()
	if b.subs[boardID] == nil {
		b.subs[boardID] = make(map[chan Event]struct{})
	}
	b.subs[boardID][ch] = struct{}{}
	b.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.subs[boardID]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(b.subs, boardID)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Bus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	send := func(subs map[chan Event]struct{}) {
		for ch := range subs {
			select {
			case ch <- ev:
			default: // drop if slow
			}
		}
	}
	if ev.BoardID != 0 {
		send(b.subs[ev.BoardID])
	}
	send(b.subs[0])
	return nil
}
