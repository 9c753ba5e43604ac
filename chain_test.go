package juro_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/relaywave/juro"
)

// Scenario 1 — Immediate resolve path.
func TestScenarioImmediateResolve(t *testing.T) {
	q := juro.ThenOk(juro.Resolved(42), func(v int) int { return v + 1 })
	require.True(t, q.IsResolved())
	require.Equal(t, 43, q.Value())
}

// Scenario 2 — Deferred resolve.
func TestScenarioDeferredResolve(t *testing.T) {
	var stashedResolve func(int)
	p := juro.New(func(resolve func(int), reject func(error)) {
		stashedResolve = resolve
	})
	q := juro.ThenOk(p, func(v int) int { return v * 2 })
	require.True(t, q.IsPending())

	stashedResolve(5)

	require.True(t, q.IsResolved())
	require.Equal(t, 10, q.Value())
}

// Scenario 3 — Rejection recovery.
func TestScenarioRejectionRecovery(t *testing.T) {
	badCause := errors.New("bad")
	q := juro.Rescue(juro.Rejected[int](badCause), func(err error) int {
		require.ErrorIs(t, err, badCause)
		return 99
	})
	require.True(t, q.IsResolved())
	require.Equal(t, 99, q.Value())
}

// Scenario 4 — Exception inside handler.
func TestScenarioPanicInsideHandlerRejectsDownstream(t *testing.T) {
	q := juro.ThenOk(juro.Resolved(1), func(int) int {
		panic("oops")
	})
	require.True(t, q.IsRejected())
	var carrier *juro.Cause
	require.ErrorAs(t, q.Err(), &carrier)
	require.Equal(t, "oops", carrier.Value())
}

// Scenario 5 — Promise-returning handler (adoption).
func TestScenarioAdoption(t *testing.T) {
	q := juro.ThenCompose(juro.Resolved(1), func(v int) *juro.Promise[int] {
		return juro.Resolved(v + 10)
	})
	require.True(t, q.IsResolved())
	require.Equal(t, 11, q.Value())
}

// Scenario 6 — Unhandled rejection is loud; make_rejected is exempt.
func TestScenarioUnhandledRejectionIsLoud(t *testing.T) {
	var stashedReject func(error)
	juro.New(func(resolve func(juro.Unit), reject func(error)) {
		stashedReject = reject
	})
	require.Panics(t, func() {
		stashedReject(errors.New("x"))
	})

	r := juro.Rejected[string](errors.New("x"))
	require.NotPanics(t, func() {
		juro.Rescue(r, func(err error) string { return "recovered" })
	})
}

// Scenario 7 — Chain ordering: the intermediate promise's settlement gates
// the second handler.
func TestScenarioChainOrdering(t *testing.T) {
	var order []string
	var stashedResolve func(juro.Unit)

	first := juro.ThenCompose(juro.ResolvedUnit(), func(juro.Unit) *juro.Promise[juro.Unit] {
		order = append(order, "A")
		return juro.New(func(resolve func(juro.Unit), reject func(error)) {
			stashedResolve = resolve
		})
	})
	second := juro.ThenOk(first, func(juro.Unit) juro.Unit {
		order = append(order, "B")
		return juro.Unit{}
	})

	require.Equal(t, []string{"A"}, order)
	require.True(t, second.IsPending())

	stashedResolve(juro.Unit{})

	require.Equal(t, []string{"A", "B"}, order)
	require.True(t, second.IsResolved())
}

func TestThenSymmetricRecoversOnBothBranches(t *testing.T) {
	okPromise := juro.Resolved(1)
	okResult := juro.Then(okPromise,
		func(v int) string { return "ok" },
		func(err error) string { return "err" },
	)
	require.Equal(t, "ok", okResult.Value())

	errPromise := juro.Rejected[int](errors.New("boom"))
	errResult := juro.Then(errPromise,
		func(v int) string { return "ok" },
		func(err error) string { return "err" },
	)
	require.Equal(t, "err", errResult.Value())
}

func TestThenComposeBothAdoptsEitherBranch(t *testing.T) {
	errPromise := juro.Rejected[int](errors.New("boom"))
	result := juro.ThenComposeBoth(errPromise,
		func(v int) *juro.Promise[int] { return juro.Resolved(v) },
		func(err error) *juro.Promise[int] { return juro.Resolved(-1) },
	)
	require.True(t, result.IsResolved())
	require.Equal(t, -1, result.Value())
}

func TestJoinProducesEitherForDistinctTypes(t *testing.T) {
	ok := juro.Join(juro.Resolved(7),
		func(v int) string { return "value" },
		func(err error) bool { return false },
	)
	require.True(t, ok.IsResolved())
	leftVal, isLeft := ok.Value().Left()
	require.True(t, isLeft)
	require.Equal(t, "value", leftVal)

	rejected := juro.Join(juro.Rejected[int](errors.New("nope")),
		func(v int) string { return "value" },
		func(err error) bool { return true },
	)
	require.True(t, rejected.IsResolved())
	rightVal, isRight := rejected.Value().Right()
	require.True(t, isRight)
	require.True(t, rightVal)
}

func TestFinallyObservesBothSettlementPaths(t *testing.T) {
	var seen []bool // true == ok branch

	juro.Finally(juro.Resolved(1), func(o juro.Outcome[int]) juro.Unit {
		seen = append(seen, o.IsOk())
		return juro.Unit{}
	})
	juro.Finally(juro.Rejected[int](errors.New("x")), func(o juro.Outcome[int]) juro.Unit {
		seen = append(seen, o.IsOk())
		return juro.Unit{}
	})

	require.Equal(t, []bool{true, false}, seen)
}

func TestFinallyComposeCanOverrideTheOutcome(t *testing.T) {
	failure := errors.New("replacement")
	q := juro.FinallyCompose(juro.Resolved(1), func(juro.Outcome[int]) *juro.Promise[string] {
		return juro.Rejected[string](failure)
	})
	require.True(t, q.IsRejected())
	require.ErrorIs(t, q.Err(), failure)
}

func TestShallowAdoptionDoesNotUnwrapTwice(t *testing.T) {
	innermost := juro.Resolved(5)
	q := juro.ThenCompose(juro.ResolvedUnit(), func(juro.Unit) *juro.Promise[*juro.Promise[int]] {
		return juro.Resolved(innermost)
	})
	require.True(t, q.IsResolved())
	require.Same(t, innermost, q.Value())
}

func TestPanicInComposeHandlerRejectsDownstream(t *testing.T) {
	q := juro.ThenCompose(juro.Resolved(1), func(int) *juro.Promise[int] {
		panic(errors.New("blew up"))
	})
	require.True(t, q.IsRejected())
	require.EqualError(t, q.Err(), "blew up")
}
