package attest

import (
	"time"

	"github.com/canvasxyz/teekit-sub002/internal/metrics"
	"github.com/canvasxyz/teekit-sub002/quote"
)

// VerifySGX reports whether raw is a valid, policy-accepted SGX DCAP
// quote. For introspection on failure, use VerifySGXResult.
func VerifySGX(raw []byte, opts Options) bool {
	return VerifySGXResult(raw, opts).Valid
}

// VerifySGXResult runs the full SGX verification chain (spec §4.3,
// specialized for the SGX family) and returns the parsed quote alongside
// the first failing error, if any.
func VerifySGXResult(raw []byte, opts Options) (result Result) {
	start := time.Now()
	defer func() {
		outcome := "reject"
		if result.Valid {
			outcome = "accept"
		}
		metrics.RecordVerify("sgx", outcome, time.Since(start).Seconds())
	}()

	q, err := quote.Parse(raw)
	if err != nil {
		return Result{Err: err}
	}
	sgx, ok := q.(*quote.SGXQuote)
	if !ok {
		return Result{Quote: q, Err: newErr(ErrPolicy, "not an sgx quote")}
	}

	certPEM, hasCertData := sgx.CertData()
	chain, err := buildChainFromCertData(certPEM, hasCertData, opts)
	if err != nil {
		return Result{Quote: q, Err: err}
	}

	if err := verifyIntelSignedRegion(sgx.Signature.CertificationData, chain, sgx.SignedRegion(), sgx.Signature.Signature, sgx.Signature.PublicKey); err != nil {
		return Result{Quote: q, Err: err}
	}

	if opts.VerifyTCB != nil {
		fmspc, _ := extractFMSPC(chain.Leaf)
		if !opts.VerifyTCB(fmspc, q) {
			return Result{Quote: q, Err: newErr(ErrTCB, "tcb policy rejected")}
		}
	}

	if !evaluateMeasurements(q, opts.VerifyMeasurements) {
		return Result{Quote: q, Err: newErr(ErrMeasurement, "no measurement predicate matched")}
	}

	return Result{Valid: true, Quote: q}
}
