package quote

import (
	"errors"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
)

// Sentinel errors for quote parsing, checked with errors.Is. They are
// plain errors, not internal/errs.Error values; AsErrsKind maps a
// ParseError carrying one of them onto the shared errs.KindParse kind.
var (
	ErrTruncatedQuote        = errors.New("quote: truncated")
	ErrUnsupportedVersion    = errors.New("quote: unsupported version")
	ErrUnsupportedTeeType    = errors.New("quote: unsupported tee type")
	ErrUnsupportedAttKeyType = errors.New("quote: unsupported attestation key type")
	ErrInvalidCertDataType   = errors.New("quote: invalid cert data type")
)

// ParseError wraps one of the sentinels above with positional context.
type ParseError struct {
	Sentinel error
	Context  string
}

func (e *ParseError) Error() string {
	if e.Context == "" {
		return e.Sentinel.Error()
	}
	return e.Sentinel.Error() + ": " + e.Context
}

func (e *ParseError) Unwrap() error { return e.Sentinel }

func newParseError(sentinel error, context string) *ParseError {
	return &ParseError{Sentinel: sentinel, Context: context}
}

// AsErrsKind maps a *ParseError to the shared errs.KindParse taxonomy, for
// code that wants to treat all verification-stage errors uniformly.
func AsErrsKind(err error) *errs.Error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return errs.Wrap(errs.KindParse, pe.Sentinel.Error(), pe)
	}
	return nil
}
