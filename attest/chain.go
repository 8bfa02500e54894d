package attest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"math/big"

	"github.com/canvasxyz/teekit-sub002/certchain"
	"github.com/canvasxyz/teekit-sub002/quote"
)

// buildChainFromCertData parses an embedded PCK cert chain (or the
// caller-supplied extra_cert_data fallback when the quote carries none),
// builds it against the pinned roots, and checks validity and revocation.
func buildChainFromCertData(certPEM []byte, hasCertData bool, opts Options) (*certchain.Chain, error) {
	var candidates []*certchain.Cert
	if hasCertData {
		parsed, err := certchain.ParseCertChainPEM(certPEM)
		if err != nil {
			return nil, err
		}
		candidates = parsed
	}
	if len(candidates) == 0 {
		candidates = opts.ExtraCertData
	}
	if len(candidates) == 0 {
		return nil, newErr(ErrPolicy, "no certification data available")
	}

	leaf := candidates[0]
	intermediates := candidates[1:]
	chain, err := certchain.BuildChain(leaf, intermediates, opts.ExtraCertData, opts.pinnedRoots())
	if err != nil {
		return nil, err
	}
	if err := certchain.CheckValidity(chain, opts.verificationInstant()); err != nil {
		return nil, err
	}
	if err := certchain.CheckRevocation(chain, opts.CRLs); err != nil {
		return nil, err
	}
	return chain, nil
}

// verifyIntelSignedRegion runs the full Intel-family signature chain
// described in spec §4.3 step 3-5: when the top-level certification data
// wraps a QE report (type 6), the QE report's own signature and its
// binding to the attestation key are checked before the attestation key
// is trusted to verify the quote's signed region; otherwise the PCK
// leaf's key verifies the signed region directly.
func verifyIntelSignedRegion(cd quote.CertificationData, chain *certchain.Chain, signedRegion []byte, mainSig [64]byte, attestKey [64]byte) error {
	leafPub, ok := chain.Leaf.X509().PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return newErr(ErrSignature, "pck leaf key is not ecdsa")
	}

	if qe, ok := cd.Data.(quote.QEReportCertificationData); ok {
		if !verifyRawP256(leafPub, qe.Signature, qe.EnclaveReport.Marshal()) {
			return newErr(ErrSignature, "qe report signature invalid")
		}
		if !checkQEReportBinding(qe, attestKey) {
			return newErr(ErrBinding, "qe report binding mismatch")
		}
		if !verifyRawP256FromXY(attestKey, mainSig, signedRegion) {
			return newErr(ErrSignature, "quote body signature invalid")
		}
		return nil
	}

	if !verifyRawP256(leafPub, mainSig, signedRegion) {
		return newErr(ErrSignature, "quote body signature invalid")
	}
	return nil
}

// verifyRawP256 verifies a raw 64-byte (r||s) ECDSA-P256/SHA-256
// signature under pub.
func verifyRawP256(pub *ecdsa.PublicKey, sig [64]byte, message []byte) bool {
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	hash := sha256.Sum256(message)
	return ecdsa.Verify(pub, hash[:], r, s)
}

// verifyRawP256FromXY verifies a raw 64-byte signature under a raw
// 64-byte (X||Y) public key, the encoding Intel uses for the attestation
// key embedded directly in the quote rather than in an X.509 certificate.
func verifyRawP256FromXY(rawPub [64]byte, sig [64]byte, message []byte) bool {
	x := new(big.Int).SetBytes(rawPub[:32])
	y := new(big.Int).SetBytes(rawPub[32:64])
	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
	return verifyRawP256(pub, sig, message)
}

// checkQEReportBinding verifies the QE report's report_data[0:32] equals
// SHA-256(attestation_public_key || qe_auth_data), per spec §4.3 step 4.
func checkQEReportBinding(qe quote.QEReportCertificationData, attestKey [64]byte) bool {
	h := sha256.New()
	h.Write(attestKey[:])
	h.Write(qe.QEAuthData.Data)
	sum := h.Sum(nil)
	return string(qe.EnclaveReport.ReportData[:32]) == string(sum)
}
