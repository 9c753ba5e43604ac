// Package juro implements promises for Go: deferred-value objects that will
// eventually be settled — resolved with a value of a known type, or rejected
// with an opaque error — and that let consumers attach handlers which fire
// synchronously the moment the promise settles (or immediately, if it is
// already settled when the handler is attached).
//
// Handlers may return a plain value, nothing, or another promise, producing a
// new, derived promise whose value type follows from the handler's return
// type. That's the composable chain this package builds: Then, ThenOk,
// Rescue, Finally and Join all produce a downstream *Promise from an
// upstream one.
//
// There is deliberately no scheduler, goroutine, or lock anywhere in this
// package. Settlement and handler invocation happen synchronously, on the
// calling goroutine, on the same call stack. A promise produced here is safe
// to use from a single goroutine at a time; if a producer and a consumer run
// on different goroutines, the caller is responsible for synchronizing them.
package juro

// Unit is the value type of a promise that carries no information — the Go
// stand-in for a "void" promise.
type Unit struct{}

// State is the lifecycle stage of a Promise. Transitions out of Resolved or
// Rejected never happen; State always moves forward, at most once.
type State uint8

const (
	// Pending is the initial state: the promise carries neither a value nor
	// an error yet.
	Pending State = iota
	// Resolved means the promise settled successfully and carries a value.
	Resolved
	// Rejected means the promise settled with an error.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}
