// Package combinator provides the fan-in/fan-out combinators that sit
// outside the promise core: All, AllSettled, Race and Any. The core
// (package juro) deliberately implements only the chaining primitives —
// these combinators are built entirely on top of its public surface (New,
// Then, Resolved, Rejected), the way any other consumer of the package
// would build them.
//
// Like the core, these combinators do no polling and spawn no goroutines:
// they attach continuations at construction time and let settlement of the
// inputs drive settlement of the combined promise.
package combinator

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/relaywave/juro"
)

// errNoCandidates is Any's rejection cause when given no promises at all —
// there is no first-to-resolve, and no causes to aggregate.
var errNoCandidates = errors.New("combinator: Any requires at least one promise")

// Outcome is one input's result as reported by AllSettled: either a
// resolved value, or the cause it was rejected with.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Ok reports whether this outcome is a resolution.
func (o Outcome[T]) Ok() bool {
	return o.Err == nil
}

// All resolves with every input's value, in input order, once all of them
// have resolved. It rejects with the cause of the first input observed to
// reject, in construction order. An empty argument list resolves
// immediately with an empty slice.
func All[T any](ps ...*juro.Promise[T]) *juro.Promise[[]T] {
	results := make([]T, len(ps))
	var pendingIdx []int
	for i, p := range ps {
		switch {
		case p.IsResolved():
			results[i] = p.Value()
		case p.IsRejected():
			return juro.Rejected[[]T](p.Err())
		default:
			pendingIdx = append(pendingIdx, i)
		}
	}
	if len(pendingIdx) == 0 {
		return juro.Resolved(results)
	}

	remaining := len(pendingIdx)
	return juro.New(func(resolve func([]T), reject func(error)) {
		done := false
		for _, idx := range pendingIdx {
			idx := idx
			juro.Then(ps[idx], func(v T) juro.Unit {
				if done {
					return juro.Unit{}
				}
				results[idx] = v
				remaining--
				if remaining == 0 {
					done = true
					resolve(results)
				}
				return juro.Unit{}
			}, func(err error) juro.Unit {
				if !done {
					done = true
					reject(err)
				}
				return juro.Unit{}
			})
		}
	})
}

// AllSettled resolves with every input's Outcome, in input order, once all
// of them have settled. Unlike All, it never rejects.
func AllSettled[T any](ps ...*juro.Promise[T]) *juro.Promise[[]Outcome[T]] {
	results := make([]Outcome[T], len(ps))
	var pendingIdx []int
	for i, p := range ps {
		switch {
		case p.IsResolved():
			results[i] = Outcome[T]{Value: p.Value()}
		case p.IsRejected():
			results[i] = Outcome[T]{Err: p.Err()}
		default:
			pendingIdx = append(pendingIdx, i)
		}
	}
	if len(pendingIdx) == 0 {
		return juro.Resolved(results)
	}

	remaining := len(pendingIdx)
	return juro.New(func(resolve func([]Outcome[T]), reject func(error)) {
		for _, idx := range pendingIdx {
			idx := idx
			juro.Then(ps[idx], func(v T) juro.Unit {
				results[idx] = Outcome[T]{Value: v}
				remaining--
				if remaining == 0 {
					resolve(results)
				}
				return juro.Unit{}
			}, func(err error) juro.Unit {
				results[idx] = Outcome[T]{Err: err}
				remaining--
				if remaining == 0 {
					resolve(results)
				}
				return juro.Unit{}
			})
		}
	})
}

// Race settles identically to whichever input promise settles first. Of
// several inputs already settled at call time, the earliest in construction
// order wins.
func Race[T any](ps ...*juro.Promise[T]) *juro.Promise[T] {
	for _, p := range ps {
		if p.IsResolved() {
			return juro.Resolved(p.Value())
		}
		if p.IsRejected() {
			return juro.Rejected[T](p.Err())
		}
	}
	if len(ps) == 0 {
		// Mirrors Promise.race([]) in JavaScript: with nothing to race
		// against, the result simply never settles.
		return juro.New(func(resolve func(T), reject func(error)) {})
	}

	return juro.New(func(resolve func(T), reject func(error)) {
		done := false
		for _, p := range ps {
			juro.Then(p, func(v T) juro.Unit {
				if !done {
					done = true
					resolve(v)
				}
				return juro.Unit{}
			}, func(err error) juro.Unit {
				if !done {
					done = true
					reject(err)
				}
				return juro.Unit{}
			})
		}
	})
}

// Any resolves with the first input to resolve. It rejects only once every
// input has rejected, combining every cause into a single
// github.com/hashicorp/go-multierror error.
func Any[T any](ps ...*juro.Promise[T]) *juro.Promise[T] {
	if len(ps) == 0 {
		return juro.Rejected[T](errNoCandidates)
	}
	causes := make([]error, len(ps))
	var pendingIdx []int
	for i, p := range ps {
		if p.IsResolved() {
			return juro.Resolved(p.Value())
		}
		if p.IsRejected() {
			causes[i] = p.Err()
			continue
		}
		pendingIdx = append(pendingIdx, i)
	}
	if len(pendingIdx) == 0 {
		return juro.Rejected[T](aggregateCauses(causes))
	}

	remaining := len(pendingIdx)
	return juro.New(func(resolve func(T), reject func(error)) {
		done := false
		for _, idx := range pendingIdx {
			idx := idx
			juro.Then(ps[idx], func(v T) juro.Unit {
				if !done {
					done = true
					resolve(v)
				}
				return juro.Unit{}
			}, func(err error) juro.Unit {
				causes[idx] = err
				remaining--
				if remaining == 0 && !done {
					done = true
					reject(aggregateCauses(causes))
				}
				return juro.Unit{}
			})
		}
	})
}

func aggregateCauses(causes []error) error {
	var result *multierror.Error
	for _, c := range causes {
		if c != nil {
			result = multierror.Append(result, c)
		}
	}
	return result.ErrorOrNil()
}
