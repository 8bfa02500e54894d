// Package quote implements the Quote Codec component: parsing and
// serializing SGX, TDX v4/v5, and SEV-SNP binary quote structures into
// typed views, and exposing the exact signed-region byte slices that
// signatures in the attest package are computed over.
//
// Parsing never performs I/O and never allocates beyond the returned
// struct and its backing slices; the same input bytes always produce
// byte-identical field values, and Marshal on every signed-region type is
// guaranteed to round-trip to the exact bytes that were parsed.
package quote

// Quote is the tagged union of quote families this codec understands. Each
// concrete type (SGXQuote, TDXV4Quote, TDXV5Quote, SevSnpReport) also
// exposes its family-specific measurement fields directly as struct
// fields; Quote only carries the operations every family must provide.
type Quote interface {
	// Family reports which TEE produced this quote.
	Family() TeeType

	// SignedRegion returns the exact bytes the quote's signature covers.
	// Re-marshaling never changes these bytes.
	SignedRegion() []byte

	// ReportData returns the 64-byte (or zero-padded equivalent)
	// caller-chosen binding field.
	ReportData() [64]byte

	// CertData returns the raw embedded certificate blob, if the quote
	// carries one inline (SGX/TDX do; SEV-SNP does not).
	CertData() ([]byte, bool)
}

// Parse decodes raw into one of the four supported Quote variants,
// dispatching on the 4-byte tee_type and version fields of the common
// header. SEV-SNP reports do not share the SGX/TDX header shape, so Parse
// falls back to sniffing the SEV-SNP version field at its own fixed offset
// when the buffer is too short to be a DCAP quote header or when the
// DCAP tee_type field doesn't match a known value.
func Parse(raw []byte) (Quote, error) {
	if len(raw) >= headerLen {
		hdr, err := parseHeader(raw)
		if err == nil {
			switch hdr.TeeType {
			case TeeTypeSGX:
				return parseSGXQuote(hdr, raw)
			case TeeTypeTDX:
				switch hdr.Version {
				case 4:
					return parseTDXV4Quote(hdr, raw)
				case 5:
					return parseTDXV5Quote(hdr, raw)
				default:
					return nil, newParseError(ErrUnsupportedVersion, "tdx")
				}
			}
		}
	}
	// Not a DCAP-framed quote; try SEV-SNP, which has its own 4-byte
	// version field at offset 0 and no tee_type discriminator.
	if rep, err := parseSevSnpReport(raw); err == nil {
		return rep, nil
	}
	return nil, newParseError(ErrUnsupportedTeeType, "unrecognized quote format")
}

// ParseBase64 is a convenience wrapper around Parse for base64-encoded
// quote blobs, the form they usually arrive in over the wire (see the
// tunnel protocol's server_kx message).
func ParseBase64(s string) (Quote, error) {
	raw, err := decodeBase64(s)
	if err != nil {
		return nil, newParseError(ErrTruncatedQuote, "invalid base64")
	}
	return Parse(raw)
}
