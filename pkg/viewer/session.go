package viewer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrClosed reports an operation against a session that is closing or closed.
// The caller should retry against whatever the registry holds next.
var ErrClosed = errors.New("viewer session closed")

// Lifecycle tracks a session from construction to teardown. There is no
// resurrection: a new show is a new Session.
type Lifecycle int

const (
	Unopened Lifecycle = iota
	Open
	Closing
	Closed
)

func (l Lifecycle) String() string {
	switch l {
	case Unopened:
		return "unopened"
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	}
	return "unknown"
}

type opKind int

const (
	opRender opKind = iota
	opClose
)

type sessionOp struct {
	kind  opKind
	frame RenderState
	reply chan error
}

// Session owns one State and serializes every render and close against it.
// All operations funnel through a single loop: at most one render executes at
// a time, a close waits for whatever render is in flight, and a render
// submitted during a close waits for the teardown to finish before reporting
// ErrClosed.
type Session struct {
	renderer Renderer
	teardown func() error // removes the visible surface; runs exactly once

	ops  chan sessionOp
	done chan struct{}

	mu        sync.Mutex
	state     *State
	lifecycle Lifecycle

	closeOnce sync.Once
	closeErr  error
}

// NewSession starts the session's op loop. teardown may be nil.
func NewSession(state *State, renderer Renderer, teardown func() error) *Session {
	s := &Session{
		renderer: renderer,
		teardown: teardown,
		ops:      make(chan sessionOp),
		done:     make(chan struct{}),
		state:    state,
	}
	go s.loop()
	return s
}

func (s *Session) loop() {
	for op := range s.ops {
		switch op.kind {
		case opRender:
			err := s.renderer.Render(op.frame)
			if err != nil {
				slog.Error("render failed", "error", err)
			} else {
				s.markOpen()
			}
			op.reply <- err
		case opClose:
			var err error
			if s.teardown != nil {
				err = s.teardown()
			}
			s.setLifecycle(Closed)
			op.reply <- err
			return
		}
	}
}

// Lifecycle returns the session's current phase.
func (s *Session) Lifecycle() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

func (s *Session) setLifecycle(l Lifecycle) {
	s.mu.Lock()
	s.lifecycle = l
	s.mu.Unlock()
}

func (s *Session) markOpen() {
	s.mu.Lock()
	if s.lifecycle == Unopened {
		s.lifecycle = Open
	}
	s.mu.Unlock()
}

// Snapshot derives the current render input from the state.
func (s *Session) Snapshot() RenderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Advance, JumpTo, SetBackground and Apply mutate the state under the
// session's lock; each reports whether anything changed.

func (s *Session) Advance(step int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Advance(step)
}

func (s *Session) JumpTo(target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.JumpTo(target)
}

func (s *Session) SetBackground(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetBackground(value)
}

func (s *Session) Apply(u Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Apply(u)
}

// Render queues a redraw of the current state and waits for it. Renders
// queued behind a failed render still run; a render that loses the race with
// a close waits for the teardown to complete and then reports ErrClosed, so
// the caller operates on a fresh session instead of one being torn down.
func (s *Session) Render(ctx context.Context) error {
	op := sessionOp{kind: opRender, frame: s.Snapshot(), reply: make(chan error, 1)}
	select {
	case s.ops <- op:
		return <-op.reply
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the session down. Idempotent: concurrent callers await the one
// teardown and share its result. The queued close waits behind any in-flight
// render, so teardown never races a render reading the state.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.setLifecycle(Closing)
		op := sessionOp{kind: opClose, reply: make(chan error, 1)}
		s.ops <- op
		s.closeErr = <-op.reply
		close(s.done)
	})
	<-s.done
	return s.closeErr
}
