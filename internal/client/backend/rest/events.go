package rest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
)

type subscriber struct {
	ch   chan backend.AuthEvent
	done chan struct{}
	once sync.Once

	// mu guards ch against a send racing close
	mu     sync.Mutex
	closed bool

	remove func()
}

func (s *subscriber) send(ev backend.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	case <-s.done:
	}
}

func (s *subscriber) cancel() {
	s.once.Do(func() {
		close(s.done)
		s.remove()
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
}

// Subscribe registers a listener for auth-state changes. Events are
// delivered in order. A listener that stops reading blocks the emitter
// once its buffer is full, so listeners must drain until cancelled.
func (a *Auth) Subscribe(ctx context.Context) (<-chan backend.AuthEvent, func()) {
	a.subsMu.Lock()
	id := a.nextID
	a.nextID++
	s := &subscriber{
		ch:   make(chan backend.AuthEvent, subscriberBufferLength),
		done: make(chan struct{}),
	}
	s.remove = func() {
		a.subsMu.Lock()
		delete(a.subs, id)
		a.subsMu.Unlock()
	}
	a.subs[id] = s
	a.subsMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			s.cancel()
		case <-s.done:
		}
	}()

	return s.ch, s.cancel
}

func (a *Auth) emit(ev backend.AuthEvent) {
	a.subsMu.Lock()
	subs := make([]*subscriber, 0, len(a.subs))
	for _, s := range a.subs {
		subs = append(subs, s)
	}
	a.subsMu.Unlock()

	for _, s := range subs {
		s.send(ev)
	}
}
