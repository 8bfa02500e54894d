package attest

import (
	"crypto/ecdsa"
	"crypto/sha512"
	"math/big"
	"time"

	"github.com/canvasxyz/teekit-sub002/certchain"
	"github.com/canvasxyz/teekit-sub002/internal/metrics"
	"github.com/canvasxyz/teekit-sub002/quote"
)

// VerifySEVSNP reports whether raw is a valid, policy-accepted AMD
// SEV-SNP attestation report. Unlike SGX/TDX, the report embeds no
// certificate chain: VCEK (leaf), ASK, and ARK must be supplied via
// Options.ExtraCertData, leaf first.
func VerifySEVSNP(raw []byte, opts Options) bool {
	return VerifySEVSNPResult(raw, opts).Valid
}

// VerifySEVSNPResult is VerifySEVSNP with introspection on failure.
func VerifySEVSNPResult(raw []byte, opts Options) (result Result) {
	start := time.Now()
	defer func() {
		outcome := "reject"
		if result.Valid {
			outcome = "accept"
		}
		metrics.RecordVerify("sevsnp", outcome, time.Since(start).Seconds())
	}()

	q, err := quote.Parse(raw)
	if err != nil {
		return Result{Err: err}
	}
	report, ok := q.(*quote.SevSnpReport)
	if !ok {
		return Result{Quote: q, Err: newErr(ErrPolicy, "not a sev-snp report")}
	}

	if len(opts.ExtraCertData) == 0 {
		return Result{Quote: q, Err: certchain.ErrMissingCertData}
	}
	vcek := opts.ExtraCertData[0]
	var intermediates []*certchain.Cert
	if len(opts.ExtraCertData) > 1 {
		intermediates = opts.ExtraCertData[1:]
	}
	chain, err := certchain.BuildChain(vcek, intermediates, opts.ExtraCertData, opts.pinnedRoots())
	if err != nil {
		return Result{Quote: q, Err: err}
	}
	if err := certchain.CheckValidity(chain, opts.verificationInstant()); err != nil {
		return Result{Quote: q, Err: err}
	}
	if err := certchain.CheckRevocation(chain, opts.CRLs); err != nil {
		return Result{Quote: q, Err: err}
	}

	vcekPub, ok := chain.Leaf.X509().PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return Result{Quote: q, Err: newErr(ErrSignature, "vcek key is not ecdsa")}
	}
	if !verifyP384(vcekPub, report.Signature, report.SignedRegion()) {
		return Result{Quote: q, Err: newErr(ErrSignature, "report signature invalid")}
	}

	if opts.MaxVMPL != nil && int(report.Body.Vmpl) > *opts.MaxVMPL {
		return Result{Quote: q, Err: newErr(ErrPolicy, "vmpl exceeds configured maximum")}
	}

	if opts.VerifyTCB != nil {
		if !opts.VerifyTCB("", q) {
			return Result{Quote: q, Err: newErr(ErrTCB, "tcb policy rejected")}
		}
	}

	if !evaluateMeasurements(q, opts.VerifyMeasurements) {
		return Result{Quote: q, Err: newErr(ErrMeasurement, "no measurement predicate matched")}
	}

	return Result{Valid: true, Quote: q}
}

// verifyP384 verifies AMD's SEV-SNP signature encoding: two little-endian
// 72-byte components, meaningful in their low 48 bytes, over SHA-384 of
// the signed region.
func verifyP384(pub *ecdsa.PublicKey, sig quote.SevSnpSignature, message []byte) bool {
	r := new(big.Int).SetBytes(reverseBytes(sig.RBytes()))
	s := new(big.Int).SetBytes(reverseBytes(sig.SBytes()))
	hash := sha512.Sum384(message)
	return ecdsa.Verify(pub, hash[:], r, s)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
