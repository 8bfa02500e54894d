package quote

import "encoding/binary"

// Signature is the ECDSA-P256 quote signature block shared by SGX and TDX
// quotes: the signature over header+body, the attestation public key that
// verifies it (called attestKey in Intel's own code), and the
// certification data chaining that key back to a PCK certificate.
type Signature struct {
	Signature          [64]byte
	PublicKey          [64]byte
	CertificationData  CertificationData
}

// parseSignature reads the variable-length signature_data block that
// follows a quote's body: a 4-byte length prefix, the 64-byte signature,
// the 64-byte attestation public key, and the certification data.
func parseSignature(raw []byte, bodyEnd int) (Signature, error) {
	if len(raw) < bodyEnd+4 {
		return Signature{}, newParseError(ErrTruncatedQuote, "signature_data_len")
	}
	sigDataLen := int(binary.LittleEndian.Uint32(raw[bodyEnd : bodyEnd+4]))
	sigDataStart := bodyEnd + 4
	if len(raw) < sigDataStart+sigDataLen {
		return Signature{}, newParseError(ErrTruncatedQuote, "signature_data")
	}
	if sigDataLen < 128 {
		return Signature{}, newParseError(ErrTruncatedQuote, "signature_data too short")
	}

	var sig Signature
	copy(sig.Signature[:], raw[sigDataStart:sigDataStart+64])
	copy(sig.PublicKey[:], raw[sigDataStart+64:sigDataStart+128])

	certData, _, err := parseCertificationData(raw, sigDataStart+128)
	if err != nil {
		return Signature{}, err
	}
	sig.CertificationData = certData
	return sig, nil
}

// extractCertData returns the raw PEM certificate chain bytes embedded in
// a Signature's certification data, whether it is present directly (type
// 5) or nested inside a QEReportCertificationData (the common TDX/SGX
// case).
func extractCertData(cd CertificationData) ([]byte, bool) {
	switch v := cd.Data.(type) {
	case []byte:
		return v, true
	case QEReportCertificationData:
		return extractCertData(v.CertificationData)
	default:
		return nil, false
	}
}
