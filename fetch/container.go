// Package fetch implements lifecycle-tracked resource containers: each
// container owns the request state for one remote resource and
// guarantees the held value always corresponds to the most recently
// issued fetch.
package fetch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Phase is the lifecycle state of a container
type Phase int

const (
	// PhaseIdle means no fetch has been issued yet
	PhaseIdle Phase = iota
	// PhaseLoading means a fetch is in flight
	PhaseLoading
	// PhaseReady means the last applied fetch succeeded
	PhaseReady
	// PhaseFailed means the last applied fetch failed
	PhaseFailed
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a container's lifecycle. Ready implies a nil
// Err; Failed implies a non-nil Err while Value retains the last good
// result (or the zero value if nothing was ever fetched).
type State[T any] struct {
	Phase Phase
	Value T
	Err   error
}

// Func performs the remote fetch for a container's resource.
type Func[T any] func(ctx context.Context) (T, error)

// Container tracks the fetch lifecycle for a single resource. State
// changes only through the fetch lifecycle; there is no direct setter.
//
// Concurrent Refetch calls are coalesced: while a fetch is in flight a
// new one does not start, but the request sequence advances so the
// in-flight response is discarded and one trailing fetch runs once it
// resolves. Stale responses can never overwrite newer data.
type Container[T any] struct {
	name     string
	fetch    Func[T]
	logger   zerolog.Logger
	onChange func(State[T])

	mu       sync.Mutex
	state    State[T]
	seq      uint64 // last issued request sequence
	inflight bool
	pending  bool
}

// NewContainer creates an idle container for the given resource name
// and fetch function.
func NewContainer[T any](name string, fetch Func[T], logger zerolog.Logger) *Container[T] {
	return &Container[T]{
		name:   name,
		fetch:  fetch,
		logger: logger,
		state:  State[T]{Phase: PhaseIdle},
	}
}

// OnChange registers a callback invoked after every applied state
// transition. Must be set before the first Refetch.
func (c *Container[T]) OnChange(fn func(State[T])) {
	c.onChange = fn
}

// State returns a snapshot of the current request state.
func (c *Container[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refetch issues a new fetch and blocks until the container has
// settled. If another fetch is already in flight the call returns
// immediately: the sequence number advances so the in-flight result is
// discarded, and the goroutine running the earlier fetch performs one
// trailing fetch for the newly issued sequence.
func (c *Container[T]) Refetch(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	if c.inflight {
		c.pending = true
		c.mu.Unlock()
		return
	}
	c.inflight = true

	for {
		issued := c.seq
		c.pending = false
		c.state.Phase = PhaseLoading
		c.state.Err = nil
		c.notifyLocked()
		c.mu.Unlock()

		value, err := c.fetch(ctx)

		c.mu.Lock()
		if issued == c.seq {
			c.applyLocked(value, err)
		} else {
			c.logger.Debug().
				Str("container", c.name).
				Uint64("issued", issued).
				Uint64("latest", c.seq).
				Msg("Discarding stale fetch result")
		}
		if !c.pending {
			c.inflight = false
			c.mu.Unlock()
			return
		}
	}
}

// Mount triggers the initial fetch. It is an alias for Refetch kept
// for call sites that run once when a view attaches.
func (c *Container[T]) Mount(ctx context.Context) {
	c.Refetch(ctx)
}

// applyLocked records the result of the latest-issued fetch. A failure
// keeps the previously held value.
func (c *Container[T]) applyLocked(value T, err error) {
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Err = err
		c.logger.Debug().Err(err).Str("container", c.name).Msg("Fetch failed")
	} else {
		c.state.Phase = PhaseReady
		c.state.Value = value
		c.state.Err = nil
	}
	c.notifyLocked()
}

// notifyLocked delivers the current state to the change callback. The
// callback runs with the lock held, so it must not call back into the
// container.
func (c *Container[T]) notifyLocked() {
	if c.onChange != nil {
		c.onChange(c.state)
	}
}
