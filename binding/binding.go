// Package binding implements the canonical derivations used to bind an
// X25519 public key, and optionally a nonce, into a quote's report_data.
package binding

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
)

// ExpectedX25519ReportData computes SHA-512(nonce || iat || key), the
// derivation Google-style TDX binding uses for report_data[0:64].
// iat is encoded as an 8-byte big-endian Unix timestamp.
func ExpectedX25519ReportData(nonce []byte, iat int64, key [32]byte) [64]byte {
	var iatBuf [8]byte
	binary.BigEndian.PutUint64(iatBuf[:], uint64(iat))

	h := sha512.New()
	h.Write(nonce)
	h.Write(iatBuf[:])
	h.Write(key[:])

	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ExpectedSGXReportData computes SHA-256(key) || zeros[32]. SGX has no
// nonce channel, so this binding cannot defeat replay by key reuse; that
// is a deliberate property of the scheme, not a gap to close here.
func ExpectedSGXReportData(key [32]byte) [64]byte {
	sum := sha256.Sum256(key[:])
	var out [64]byte
	copy(out[:32], sum[:])
	return out
}

// ExpectedAzureReportData computes SHA-512(nonce || user_data), used
// inside the vTPM runtime_data blob for Azure TDX attestation.
// TODO: attest.VerifyAzureTDXResult computes this same digest inline
// instead of calling this export; switch it over or drop the export.
func ExpectedAzureReportData(nonce, userData []byte) [64]byte {
	h := sha512.New()
	h.Write(nonce)
	h.Write(userData)
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// CheckX25519 reports whether reportData matches the X25519 binding
// derivation for the given nonce, issued-at time, and key.
func CheckX25519(reportData [64]byte, nonce []byte, iat int64, key [32]byte) bool {
	return ExpectedX25519ReportData(nonce, iat, key) == reportData
}

// CheckSGX reports whether reportData matches the SGX binding derivation
// for the given key.
func CheckSGX(reportData [64]byte, key [32]byte) bool {
	return ExpectedSGXReportData(key) == reportData
}

// CheckAzure reports whether the first 32 bytes of reportData equal
// SHA-256(runtimeData) and the trailing 32 bytes are all zero.
func CheckAzure(reportData [64]byte, runtimeData []byte) bool {
	sum := sha256.Sum256(runtimeData)
	if [32]byte(reportData[0:32]) != sum {
		return false
	}
	for _, b := range reportData[32:64] {
		if b != 0 {
			return false
		}
	}
	return true
}
