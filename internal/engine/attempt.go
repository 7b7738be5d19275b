package engine

// AttemptState is the outcome of one strategy in a fallback chain.
type AttemptState int

const (
	AttemptOK            AttemptState = iota // value usable as-is
	AttemptNeedsFallback                     // recoverable; try the next strategy
	AttemptFailed                            // fatal; stop the chain
)

func (s AttemptState) String() string {
	switch s {
	case AttemptOK:
		return "ok"
	case AttemptNeedsFallback:
		return "needs_fallback"
	default:
		return "failed"
	}
}

// Attempt makes "try primary, degrade to secondary" decisions explicit values
// instead of control flow hidden in error paths.
type Attempt[T any] struct {
	State  AttemptState
	Value  T
	Reason string // set for NeedsFallback
	Err    error  // set for Failed, optional for NeedsFallback
}

// Ok wraps a usable value.
func Ok[T any](v T) Attempt[T] {
	return Attempt[T]{State: AttemptOK, Value: v}
}

// NeedsFallback records why the next strategy should run.
func NeedsFallback[T any](reason string, err error) Attempt[T] {
	return Attempt[T]{State: AttemptNeedsFallback, Reason: reason, Err: err}
}

// Failed records a fatal error.
func Failed[T any](err error) Attempt[T] {
	return Attempt[T]{State: AttemptFailed, Err: err}
}

// IsOK reports whether the attempt produced a value.
func (a Attempt[T]) IsOK() bool { return a.State == AttemptOK }

// Or runs next only when a needs a fallback; OK and Failed pass through.
func (a Attempt[T]) Or(next func() Attempt[T]) Attempt[T] {
	if a.State != AttemptNeedsFallback {
		return a
	}
	return next()
}
