package attest

import "github.com/canvasxyz/teekit-sub002/quote"

// Result is the introspectable outcome of a _verify_* call: the parsed
// quote (even on failure, when parsing itself succeeded) and the first
// failing error, if any.
type Result struct {
	Valid bool
	Quote quote.Quote
	Err   error
}
