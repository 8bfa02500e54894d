package attest

import "errors"

// Sentinel errors for the verifier's own failure kinds, distinct from the
// quote and certchain packages' ParseError and CertChainError. Checked
// with errors.Is.
var (
	ErrSignature   = errors.New("attest: signature verification failed")
	ErrMeasurement = errors.New("attest: measurement predicate did not match")
	ErrTCB         = errors.New("attest: tcb policy rejected")
	ErrBinding     = errors.New("attest: report_data binding mismatch")
	ErrPolicy      = errors.New("attest: policy violation")
)

// Error is the common shape attest's own failures take, distinguishing
// them from an embedded ParseError or CertChainError bubbled up unwrapped.
type Error struct {
	Sentinel error
	Detail   string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Sentinel.Error()
	}
	return e.Sentinel.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Sentinel }

func newErr(sentinel error, detail string) *Error {
	return &Error{Sentinel: sentinel, Detail: detail}
}
