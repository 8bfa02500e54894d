// Package errs defines the typed error kinds returned by the tunnel and
// manifest packages, one Error type whose Kind callers switch on. The
// quote, certchain and attest packages report failures through their own
// sentinel errors instead; quote.AsErrsKind maps a quote parse error onto
// KindParse.
package errs

import "fmt"

// Kind identifies which stage of verification produced an error.
type Kind string

const (
	KindParse       Kind = "parse"
	KindCertChain   Kind = "cert_chain"
	KindSignature   Kind = "signature"
	KindMeasurement Kind = "measurement"
	KindTCB         Kind = "tcb"
	KindBinding     Kind = "binding"
	KindHandshake   Kind = "handshake"
	KindChannel     Kind = "channel"
	KindPolicy      Kind = "policy"
)

// Error is the common shape of every typed error kind in this module. The
// Reason field carries a machine-checkable sub-code (e.g. "revoked",
// "expired_or_not_yet_valid") while Msg carries the human-readable detail.
type Error struct {
	Kind   Kind
	Reason string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Reason, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, reason, msg string) *Error {
	return &Error{Kind: kind, Reason: reason, Msg: msg}
}

// Wrap constructs an Error of the given kind that wraps an underlying cause.
func Wrap(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Msg: err.Error(), Err: err}
}

// KindOf returns the Kind of the first *Error found in err's Unwrap chain
// (err itself included), and false if there is none.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
		return e.Kind, true
	}
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok {
			return "", false
		}
		err = u.Unwrap()
		if as, ok := err.(*Error); ok {
			return as.Kind, true
		}
	}
}
