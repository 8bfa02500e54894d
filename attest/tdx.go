package attest

import (
	"time"

	"github.com/canvasxyz/teekit-sub002/internal/metrics"
	"github.com/canvasxyz/teekit-sub002/quote"
)

// VerifyTDX reports whether raw is a valid, policy-accepted TDX DCAP
// quote, handling both v4 (TD10 body) and v5 (TD10 or TD15 body,
// selected by the quote's own body descriptor).
func VerifyTDX(raw []byte, opts Options) bool {
	return VerifyTDXResult(raw, opts).Valid
}

// VerifyTDXResult is VerifyTDX with introspection on failure.
func VerifyTDXResult(raw []byte, opts Options) (result Result) {
	start := time.Now()
	defer func() {
		outcome := "reject"
		if result.Valid {
			outcome = "accept"
		}
		metrics.RecordVerify("tdx", outcome, time.Since(start).Seconds())
	}()

	q, err := quote.Parse(raw)
	if err != nil {
		return Result{Err: err}
	}

	var cd quote.CertificationData
	var certPEM []byte
	var hasCertData bool
	var mainSig, attestKey [64]byte

	switch tdx := q.(type) {
	case *quote.TDXV4Quote:
		cd = tdx.Signature.CertificationData
		certPEM, hasCertData = tdx.CertData()
		mainSig, attestKey = tdx.Signature.Signature, tdx.Signature.PublicKey
	case *quote.TDXV5Quote:
		cd = tdx.Signature.CertificationData
		certPEM, hasCertData = tdx.CertData()
		mainSig, attestKey = tdx.Signature.Signature, tdx.Signature.PublicKey
	default:
		return Result{Quote: q, Err: newErr(ErrPolicy, "not a tdx quote")}
	}

	chain, err := buildChainFromCertData(certPEM, hasCertData, opts)
	if err != nil {
		return Result{Quote: q, Err: err}
	}

	if err := verifyIntelSignedRegion(cd, chain, q.SignedRegion(), mainSig, attestKey); err != nil {
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
