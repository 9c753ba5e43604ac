package juro

// New allocates a pending Promise[T] and invokes launcher synchronously with
// functions that resolve or reject it. launcher may settle the promise
// before New returns, or stash the resolve/reject functions away and settle
// it later; either way, New returns the same handle.
func New[T any](launcher func(resolve func(T), reject func(error))) *Promise[T] {
	p := newPending[T]()
	launcher(p.Resolve, p.Reject)
	return p
}

// Resolved returns a new promise already Resolved with v.
func Resolved[T any](v T) *Promise[T] {
	p := newPending[T]()
	p.state = Resolved
	p.value = v
	return p
}

// ResolvedUnit returns a new Promise[Unit] already Resolved.
func ResolvedUnit() *Promise[Unit] {
	return Resolved(Unit{})
}

// Rejected returns a new promise already Rejected with err. Unlike Reject,
// this does not require a continuation to be attached: it's the sanctioned
// way to produce a rejected promise up front, before anyone has had a
// chance to chain onto it.
func Rejected[T any](err error) *Promise[T] {
	if err == nil {
		panic(newContractError(ErrNilCause))
	}
	p := newPending[T]()
	p.state = Rejected
	p.err = err
	return p
}
