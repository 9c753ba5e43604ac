package juro

// This file implements the chaining primitives (Then family, Rescue,
// Finally, Join) and the "pipe": the rules that forward a handler's result
// into the downstream promise it produces, including one-level-deep
// adoption when a handler returns another promise.
//
// Every entry point here follows the same shape: allocate a downstream
// promise, install a continuation on the upstream promise that runs the
// matching handler and pipes its result (or panic) into downstream, then
// return downstream. If upstream is already settled, onSettle runs that
// continuation immediately, so these functions can re-enter synchronously.

// ThenOk installs onOk to run when p resolves, and returns a new promise
// resolved with onOk's return value. If p rejects, the rejection is
// forwarded to the downstream promise unchanged — this is the "reject
// handler re-raises what it received" shorthand for a single-argument Then.
func ThenOk[T, U any](p *Promise[T], onOk func(T) U) *Promise[U] {
	downstream := newPending[U]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleOk(downstream, func() U { return onOk(p.value) })
		} else {
			downstream.settleRejected(p.err)
		}
	})
	return downstream
}

// ThenCompose is ThenOk's adopting counterpart: onOk returns a promise
// handle rather than a plain value, and the downstream promise adopts that
// handle's eventual settlement, one level deep. If p rejects, the rejection
// is forwarded unchanged, exactly as in ThenOk.
func ThenCompose[T, U any](p *Promise[T], onOk func(T) *Promise[U]) *Promise[U] {
	downstream := newPending[U]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleCompose(downstream, func() *Promise[U] { return onOk(p.value) })
		} else {
			downstream.settleRejected(p.err)
		}
	})
	return downstream
}

// Then installs both onOk and onErr, and returns a new promise resolved
// with whichever handler's return value results from p's settlement. Unlike
// ThenOk, a rejection of p does not forward automatically: onErr must
// recover a value (or panic to reject downstream in turn).
func Then[T, U any](p *Promise[T], onOk func(T) U, onErr func(error) U) *Promise[U] {
	downstream := newPending[U]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleOk(downstream, func() U { return onOk(p.value) })
		} else {
			settleOk(downstream, func() U { return onErr(p.err) })
		}
	})
	return downstream
}

// ThenComposeBoth is Then's adopting counterpart: both handlers return a
// promise handle, and downstream adopts whichever one settles the chain.
func ThenComposeBoth[T, U any](p *Promise[T], onOk func(T) *Promise[U], onErr func(error) *Promise[U]) *Promise[U] {
	downstream := newPending[U]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleCompose(downstream, func() *Promise[U] { return onOk(p.value) })
		} else {
			settleCompose(downstream, func() *Promise[U] { return onErr(p.err) })
		}
	})
	return downstream
}

// Rescue recovers a promise's rejection into a value of the same type T,
// leaving a resolution untouched. It's equivalent to Then with an identity
// resolve handler.
func Rescue[T any](p *Promise[T], onErr func(error) T) *Promise[T] {
	downstream := newPending[T]()
	p.onSettle(func() {
		if p.state == Resolved {
			downstream.Resolve(p.value)
		} else {
			settleOk(downstream, func() T { return onErr(p.err) })
		}
	})
	return downstream
}

// RescueCompose is Rescue's adopting counterpart: onErr returns a promise
// handle that downstream adopts.
func RescueCompose[T any](p *Promise[T], onErr func(error) *Promise[T]) *Promise[T] {
	downstream := newPending[T]()
	p.onSettle(func() {
		if p.state == Resolved {
			downstream.Resolve(p.value)
		} else {
			settleCompose(downstream, func() *Promise[T] { return onErr(p.err) })
		}
	})
	return downstream
}

// Finally installs a single handler invoked on either settlement path, and
// returns a new promise resolved with whatever that handler returns. The
// handler observes which path fired through the Outcome it's given.
func Finally[T, U any](p *Promise[T], onSettle func(Outcome[T]) U) *Promise[U] {
	downstream := newPending[U]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleOk(downstream, func() U { return onSettle(okOutcome(p.value)) })
		} else {
			settleOk(downstream, func() U { return onSettle(errOutcome[T](p.err)) })
		}
	})
	return downstream
}

// FinallyCompose is Finally's adopting counterpart.
func FinallyCompose[T, U any](p *Promise[T], onSettle func(Outcome[T]) *Promise[U]) *Promise[U] {
	downstream := newPending[U]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleCompose(downstream, func() *Promise[U] { return onSettle(okOutcome(p.value)) })
		} else {
			settleCompose(downstream, func() *Promise[U] { return onSettle(errOutcome[T](p.err)) })
		}
	})
	return downstream
}

// Join is the general, asymmetric chaining primitive: onOk and onErr may
// return different types, and the downstream promise resolves with an
// Either tagged with whichever branch actually ran (a panicking handler
// rejects it instead, as in Then). This is the
// "distinct types" row of the chaining table; Then and ThenOk cover the
// "same type" and "void" rows without requiring callers to unwrap an
// Either for the common case.
func Join[T, Ro, Re any](p *Promise[T], onOk func(T) Ro, onErr func(error) Re) *Promise[Either[Ro, Re]] {
	downstream := newPending[Either[Ro, Re]]()
	p.onSettle(func() {
		if p.state == Resolved {
			settleOk(downstream, func() Either[Ro, Re] { return LeftOf[Ro, Re](onOk(p.value)) })
		} else {
			settleOk(downstream, func() Either[Ro, Re] { return RightOf[Ro, Re](onErr(p.err)) })
		}
	})
	return downstream
}

// settleOk runs compute, resolving downstream with its result. A panic from
// compute is caught and rejects downstream instead, via the same exemption
// from the unhandled-rejection check that the Rejected factory uses: a
// rejection produced by the chaining machinery is never a "naked" mistake.
func settleOk[U any](downstream *Promise[U], compute func() U) {
	defer func() {
		if r := recover(); r != nil {
			downstream.settleRejected(panicToError(r))
		}
	}()
	downstream.Resolve(compute())
}

// settleCompose runs compute to get an inner promise, then adopts its
// eventual settlement into downstream. A panic from compute rejects
// downstream directly, the same way settleOk does.
func settleCompose[U any](downstream *Promise[U], compute func() *Promise[U]) {
	defer func() {
		if r := recover(); r != nil {
			downstream.settleRejected(panicToError(r))
		}
	}()
	adopt(compute(), downstream)
}

// adopt installs a continuation on inner that forwards its settlement to
// downstream, one level deep: if inner itself resolves with a value that is
// in turn a promise, that inner-inner promise is not unwrapped further.
func adopt[U any](inner, downstream *Promise[U]) {
	inner.onSettle(func() {
		if inner.state == Resolved {
			downstream.Resolve(inner.value)
		} else {
			downstream.settleRejected(inner.err)
		}
	})
}
