package certchain

import (
	"crypto/x509"
	_ "embed"
	"encoding/pem"
	"sync"
)

//go:embed roots/intel_sgx_root_ca.pem
var intelSGXRootCAPEM []byte

//go:embed roots/amd_ark_milan.pem
var amdARKMilanPEM []byte

//go:embed roots/amd_ark_genoa.pem
var amdARKGenoaPEM []byte

//go:embed roots/amd_ark_turin.pem
var amdARKTurinPEM []byte

// rootsVersion is bumped whenever the embedded root set changes, so a
// caller pinning a PinnedRoots.Version can detect a stale build.
const rootsVersion = "2024-05-intel-sgx-amd-milan-genoa-turin"

// PinnedRoots is the small, version-stamped set of vendor root
// certificates verification must terminate at. The zero value is NOT a
// usable root set (see DefaultPinnedRoots); an explicitly empty
// &PinnedRoots{Version: ..., Roots: nil} is a valid override that makes
// every verification fail with ErrInvalidRoot, which test suites use to
// exercise the pinning invariant.
type PinnedRoots struct {
	Version string
	Roots   []*x509.Certificate
}

// Has reports whether cert matches one of the pinned roots by raw DER
// bytes (subject, issuer and public key must all match bit-for-bit,
// which comparing the full DER encoding gives for free).
func (p *PinnedRoots) Has(cert *x509.Certificate) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roots {
		if r.Equal(cert) {
			return true
		}
	}
	return false
}

var (
	defaultRootsOnce sync.Once
	defaultRoots     *PinnedRoots
)

// DefaultPinnedRoots returns the immutable, process-wide table of compiled
//-in vendor root certificates: Intel's SGX Root CA (which also anchors
// TDX chains, since TDX PCK certificates chain through the same Intel PKI)
// and AMD's Milan/Genoa/Turin ARK certificates. It is built once and
// always returns the same pointer.
func DefaultPinnedRoots() *PinnedRoots {
	defaultRootsOnce.Do(func() {
		defaultRoots = &PinnedRoots{
			Version: rootsVersion,
			Roots: mustParseAll(
				intelSGXRootCAPEM,
				amdARKMilanPEM,
				amdARKGenoaPEM,
				amdARKTurinPEM,
			),
		}
	})
	return defaultRoots
}

func mustParseAll(pems ...[]byte) []*x509.Certificate {
	var out []*x509.Certificate
	for _, p := range pems {
		block, _ := pem.Decode(p)
		if block == nil {
			panic("certchain: embedded root PEM failed to decode")
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			panic("certchain: embedded root certificate failed to parse: " + err.Error())
		}
		out = append(out, cert)
	}
	return out
}
