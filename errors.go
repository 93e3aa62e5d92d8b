package imgmosaic

import "fmt"

// Debug toggles whether an InconsistentState condition panics (useful
// while developing a new component) instead of being returned as an
// error. Release builds leave this false.
var Debug = false

// Kind classifies the failure modes a caller needs to distinguish.
type Kind int

const (
	// InvalidArgument means the caller passed a value that violates a
	// documented precondition (bad metric, K out of range, empty slice).
	InvalidArgument Kind = iota
	// BackendFailure wraps an error surfaced by an ImageProvider
	// implementation (decode failure, short write, missing file).
	BackendFailure
	// InconsistentState means an internal invariant was violated. This
	// should never happen from valid input; it indicates a bug.
	InconsistentState
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case BackendFailure:
		return "backend failure"
	case InconsistentState:
		return "inconsistent state"
	default:
		return "unknown error kind"
	}
}

// Error is the error type returned across package boundaries. Op names
// the operation that failed; Err, when present, is the wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// invalidArg builds an InvalidArgument error.
func invalidArg(op, format string, args ...interface{}) error {
	return &Error{Kind: InvalidArgument, Op: op, Err: fmt.Errorf(format, args...)}
}

// backendFailure wraps a native ImageProvider error.
func backendFailure(op string, err error) error {
	return &Error{Kind: BackendFailure, Op: op, Err: err}
}

// inconsistent reports a violated internal invariant. In debug builds
// it panics immediately so the broken invariant is caught close to its
// cause; otherwise it returns an *Error the caller can handle.
func inconsistent(op, format string, args ...interface{}) error {
	err := &Error{Kind: InconsistentState, Op: op, Err: fmt.Errorf(format, args...)}
	if Debug {
		panic(err)
	}
	return err
}
