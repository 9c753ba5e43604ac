package juro

// Promise holds a value of type T that is not yet available. It starts
// Pending, and settles at most once, terminally, to either Resolved (with a
// value of T) or Rejected (with an error). A Promise is always used through
// a *Promise handle; the zero value is not meaningful on its own and should
// only ever be produced by New, Resolved or Rejected.
//
// Promise carries no mutex and performs no synchronization: Resolve, Reject
// and every chaining function are only safe to call from a single goroutine
// at a time, or under external synchronization supplied by the caller.
type Promise[T any] struct {
	state State
	value T
	err   error

	// continuation is the single callback fired at settlement, or
	// immediately upon installation if the promise is already settled.
	// Installing a new one discards whatever was installed before it.
	continuation func()
}

func newPending[T any]() *Promise[T] {
	return &Promise[T]{}
}

// State reports the promise's current lifecycle stage.
func (p *Promise[T]) State() State {
	return p.state
}

// IsPending reports whether the promise has not yet settled.
func (p *Promise[T]) IsPending() bool {
	return p.state == Pending
}

// IsResolved reports whether the promise settled successfully.
func (p *Promise[T]) IsResolved() bool {
	return p.state == Resolved
}

// IsRejected reports whether the promise settled with an error.
func (p *Promise[T]) IsRejected() bool {
	return p.state == Rejected
}

// IsSettled reports whether the promise has left the Pending state.
func (p *Promise[T]) IsSettled() bool {
	return p.state != Pending
}

// Value returns the promise's resolved value, or the zero value of T if the
// promise isn't Resolved. Callers that need to distinguish "resolved with
// the zero value" from "not resolved" should check IsResolved first.
func (p *Promise[T]) Value() T {
	return p.value
}

// Err returns the promise's rejection cause, or nil if the promise isn't
// Rejected.
func (p *Promise[T]) Err() error {
	return p.err
}

// Resolve settles the promise with v. It panics, wrapping ErrAlreadySettled,
// if the promise is not Pending. If a continuation is installed, it fires
// synchronously before Resolve returns.
func (p *Promise[T]) Resolve(v T) {
	if p.state != Pending {
		panic(newContractError(ErrAlreadySettled))
	}
	p.state = Resolved
	p.value = v
	p.fire()
}

// Reject settles the promise with cause. It panics, wrapping
// ErrAlreadySettled, if the promise is not Pending, and wrapping
// ErrNilCause if cause is nil.
//
// If a continuation is installed, it fires synchronously before Reject
// returns. Otherwise, Reject panics, wrapping ErrUnhandledRejection: a
// rejection nobody can observe is treated as a programming mistake. Use
// Rejected to construct an already-rejected promise without tripping this
// check.
func (p *Promise[T]) Reject(cause error) {
	if p.state != Pending {
		panic(newContractError(ErrAlreadySettled))
	}
	if cause == nil {
		panic(newContractError(ErrNilCause))
	}
	p.state = Rejected
	p.err = cause
	if p.continuation == nil {
		panic(newContractError(ErrUnhandledRejection))
	}
	p.fire()
}

// settleRejected rejects the promise without the unhandled-rejection check.
// It's used internally by the chaining machinery to propagate a rejection
// (a handler panic, or an adopted promise's rejection) across the chain,
// exactly as the Rejected factory is exempt from the same check: neither is
// a "naked", unobservable rejection — both are produced by code that has
// already decided how this promise fits into a larger chain.
func (p *Promise[T]) settleRejected(cause error) {
	if p.state != Pending {
		panic(newContractError(ErrAlreadySettled))
	}
	p.state = Rejected
	p.err = cause
	p.fire()
}

// onSettle installs fn as the promise's continuation. If the promise is
// already settled, fn fires immediately, synchronously, before onSettle
// returns. Calling onSettle again before settlement silently discards
// whatever continuation was installed before it — the previous downstream
// promise derived from it will never settle as a result of this promise.
func (p *Promise[T]) onSettle(fn func()) {
	p.continuation = fn
	if p.state != Pending {
		p.fire()
	}
}

func (p *Promise[T]) fire() {
	if p.continuation == nil {
		return
	}
	c := p.continuation
	p.continuation = nil
	c()
}
