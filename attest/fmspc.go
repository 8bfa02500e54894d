package attest

import (
	"encoding/asn1"
	"encoding/hex"

	"github.com/canvasxyz/teekit-sub002/certchain"
)

// Intel's SGX certificate extension (1.2.840.113741.1.13.1) and its
// fmspc sub-field (…1.13.1.4), per the PCK certificate specification.
var (
	oidSGXExtension = asn1.ObjectIdentifier{1, 2, 840, 113741, 1, 13, 1}
	oidFMSPC        = asn1.ObjectIdentifier{1, 2, 840, 113741, 1, 13, 1, 4}
)

type sgxExtensionEntry struct {
	ID    asn1.ObjectIdentifier
	Value asn1.RawValue
}

// extractFMSPC reads the FMSPC value out of a PCK leaf certificate's
// Intel SGX extension, returning ("", false) if the certificate doesn't
// carry one (e.g. a non-Intel leaf used in tests).
func extractFMSPC(leaf *certchain.Cert) (string, bool) {
	for _, ext := range leaf.X509().Extensions {
		if !ext.Id.Equal(oidSGXExtension) {
			continue
		}
		var entries []sgxExtensionEntry
		if _, err := asn1.Unmarshal(ext.Value, &entries); err != nil {
			continue
		}
		for _, e := range entries {
			if e.ID.Equal(oidFMSPC) {
				return hex.EncodeToString(e.Value.Bytes), true
			}
		}
	}
	return "", false
}
