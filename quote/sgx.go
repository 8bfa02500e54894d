package quote

import "encoding/binary"

const enclaveReportLen = 384

// EnclaveReportBody is Intel's SGX REPORT_BODY structure: 384 bytes,
// reused both as the body of a standalone SGX quote and as the Quoting
// Enclave's own report nested inside a TDX quote's QEReportCertificationData.
type EnclaveReportBody struct {
	CPUSVN     [16]byte
	MiscSelect uint32
	Reserved1  [28]byte
	Attributes [16]byte
	MREnclave  [32]byte
	Reserved2  [32]byte
	MRSigner   [32]byte
	Reserved3  [96]byte
	ISVProdID  uint16
	ISVSVN     uint16
	Reserved4  [60]byte
	ReportData [64]byte
}

// Marshal returns the exact 384-byte encoding, byte-identical to whatever
// parseEnclaveReportBody consumed.
func (b EnclaveReportBody) Marshal() []byte {
	buf := make([]byte, enclaveReportLen)
	off := 0
	copy(buf[off:off+16], b.CPUSVN[:])
	off += 16
	binary.LittleEndian.PutUint32(buf[off:off+4], b.MiscSelect)
	off += 4
	copy(buf[off:off+28], b.Reserved1[:])
	off += 28
	copy(buf[off:off+16], b.Attributes[:])
	off += 16
	copy(buf[off:off+32], b.MREnclave[:])
	off += 32
	copy(buf[off:off+32], b.Reserved2[:])
	off += 32
	copy(buf[off:off+32], b.MRSigner[:])
	off += 32
	copy(buf[off:off+96], b.Reserved3[:])
	off += 96
	binary.LittleEndian.PutUint16(buf[off:off+2], b.ISVProdID)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], b.ISVSVN)
	off += 2
	copy(buf[off:off+60], b.Reserved4[:])
	off += 60
	copy(buf[off:off+64], b.ReportData[:])
	off += 64
	return buf
}

func parseEnclaveReportBody(buf []byte) (EnclaveReportBody, error) {
	if len(buf) < enclaveReportLen {
		return EnclaveReportBody{}, newParseError(ErrTruncatedQuote, "enclave_report")
	}
	var b EnclaveReportBody
	off := 0
	copy(b.CPUSVN[:], buf[off:off+16])
	off += 16
	b.MiscSelect = binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	copy(b.Reserved1[:], buf[off:off+28])
	off += 28
	copy(b.Attributes[:], buf[off:off+16])
	off += 16
	copy(b.MREnclave[:], buf[off:off+32])
	off += 32
	copy(b.Reserved2[:], buf[off:off+32])
	off += 32
	copy(b.MRSigner[:], buf[off:off+32])
	off += 32
	copy(b.Reserved3[:], buf[off:off+96])
	off += 96
	b.ISVProdID = binary.LittleEndian.Uint16(buf[off : off+2])
	off += 2
	b.ISVSVN = binary.LittleEndian.Uint16(buf[off : off+2])
	off += 2
	copy(b.Reserved4[:], buf[off:off+60])
	off += 60
	copy(b.ReportData[:], buf[off:off+64])
	off += 64
	return b, nil
}

// SGXQuote is a standalone SGX DCAP quote: header + SGX REPORT_BODY +
// ECDSA signature data. Rejected at parse time for header.Version < 3.
type SGXQuote struct {
	Header    QuoteHeader
	Body      EnclaveReportBody
	Signature Signature
}

func (q *SGXQuote) Family() TeeType    { return TeeTypeSGX }
func (q *SGXQuote) ReportData() [64]byte { return q.Body.ReportData }

func (q *SGXQuote) SignedRegion() []byte {
	h := q.Header.Marshal()
	b := q.Body.Marshal()
	return append(h, b...)
}

func (q *SGXQuote) CertData() ([]byte, bool) {
	return extractCertData(q.Signature.CertificationData)
}

func parseSGXQuote(hdr QuoteHeader, raw []byte) (*SGXQuote, error) {
	if hdr.Version < 3 {
		return nil, newParseError(ErrUnsupportedVersion, "sgx")
	}
	if len(raw) < headerLen+enclaveReportLen {
		return nil, newParseError(ErrTruncatedQuote, "sgx body")
	}
	body, err := parseEnclaveReportBody(raw[headerLen : headerLen+enclaveReportLen])
	if err != nil {
		return nil, err
	}
	sig, err := parseSignature(raw, headerLen+enclaveReportLen)
	if err != nil {
		return nil, err
	}
	return &SGXQuote{Header: hdr, Body: body, Signature: sig}, nil
}
