// Package async tracks the observable state of remote calls.
//
// An Operation is a reusable slot that moves through Idle, Loading and then
// Succeeded or Failed for each invocation. Every invocation is tagged with a
// ticket; a completion is applied only if its ticket is the latest one issued,
// so a slow older call can never overwrite the outcome of a newer one.
package async

import (
	"context"
	"errors"
	"sync"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}

// Ticket identifies one invocation of an Operation.
type Ticket uint64

// State is a snapshot of an Operation.
// Result is meaningful only when Phase is Succeeded, Err only when it is Failed.
type State[T any] struct {
	Phase  Phase
	Result T
	Err    string
}

type Operation[T any] struct {
	mu     sync.Mutex
	latest Ticket
	state  State[T]
}

// Begin starts a new invocation. The slot enters Loading and forgets the
// previous result and error.
func (o *Operation[T]) Begin() Ticket {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.latest++
	o.state = State[T]{Phase: Loading}
	return o.latest
}

// TryBegin starts a new invocation unless one is already loading.
func (o *Operation[T]) TryBegin() (Ticket, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Phase == Loading {
		return o.latest, false
	}
	o.latest++
	o.state = State[T]{Phase: Loading}
	return o.latest, true
}

// Succeed records result if ticket is the latest invocation. apply, if not
// nil, runs under the slot lock before the slot becomes Succeeded.
// It reports whether the completion was applied.
func (o *Operation[T]) Succeed(ticket Ticket, result T, apply func(T)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ticket != o.latest {
		return false
	}
	if apply != nil {
		apply(result)
	}
	o.state = State[T]{Phase: Succeeded, Result: result}
	return true
}

// Fail records message if ticket is the latest invocation.
// It reports whether the completion was applied.
func (o *Operation[T]) Fail(ticket Ticket, message string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ticket != o.latest {
		return false
	}
	o.state = State[T]{Phase: Failed, Err: message}
	return true
}

// Current reports whether ticket is still the latest invocation.
func (o *Operation[T]) Current(ticket Ticket) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return ticket == o.latest
}

func (o *Operation[T]) State() State[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Operation[T]) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Phase == Loading
}

// Reset returns the slot to Idle. Completions of invocations begun before
// the reset are discarded.
func (o *Operation[T]) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.latest++
	o.state = State[T]{}
}

// Run drives one invocation of fn through op. On success apply runs with the
// result (see Succeed); on failure the error is stored as described by Describe.
// It returns the ticket of the invocation and whether its completion was applied.
func Run[T any](ctx context.Context, op *Operation[T], fn func(context.Context) (T, error), apply func(T)) (Ticket, bool) {
	ticket := op.Begin()
	result, err := fn(ctx)
	if err != nil {
		return ticket, op.Fail(ticket, Describe(err))
	}
	return ticket, op.Succeed(ticket, result, apply)
}

// Describer is implemented by errors that carry a message meant for users.
type Describer interface {
	Describe() string
}

// GenericFailure is shown for errors that carry no user-facing message.
const GenericFailure = "Something went wrong, please try again"

// Describe returns the user-facing message of err.
func Describe(err error) string {
	var d Describer
	if errors.As(err, &d) {
		if msg := d.Describe(); msg != "" {
			return msg
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out"
	}
	return GenericFailure
}
