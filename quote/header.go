package quote

import "encoding/binary"

// TeeType identifies the quote family from the header's 4-byte tee_type
// field, per the Intel DCAP quote format and AMD's SEV-SNP report.
type TeeType uint32

const (
	TeeTypeSGX TeeType = 0x00000000
	TeeTypeTDX TeeType = 0x00000081
)

func (t TeeType) String() string {
	switch t {
	case TeeTypeSGX:
		return "sgx"
	case TeeTypeTDX:
		return "tdx"
	default:
		return "unknown"
	}
}

// headerLen is the fixed size in bytes of QuoteHeader on the wire.
const headerLen = 48

// QuoteHeader is the common 48-byte header shared by SGX and TDX quotes
// (version, attestation key type, tee type, QE vendor ID and user data).
// Field order and sizes are fixed by the DCAP quote format; every numeric
// field is little-endian.
type QuoteHeader struct {
	Version            uint16
	AttestationKeyType uint16
	TeeType            TeeType
	Reserved1          uint16
	Reserved2          uint16
	QEVendorID         [16]byte
	UserData           [20]byte
}

// Marshal returns the exact 48-byte signed-region encoding of the header.
// Re-serialization is always byte-identical to the bytes parseHeader
// consumed, because every field copies straight through with no
// normalization.
func (h QuoteHeader) Marshal() []byte {
	buf := make([]byte, headerLen)
	binary.LittleEndian.PutUint16(buf[0:2], h.Version)
	binary.LittleEndian.PutUint16(buf[2:4], h.AttestationKeyType)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.TeeType))
	binary.LittleEndian.PutUint16(buf[8:10], h.Reserved1)
	binary.LittleEndian.PutUint16(buf[10:12], h.Reserved2)
	copy(buf[12:28], h.QEVendorID[:])
	copy(buf[28:48], h.UserData[:])
	return buf
}

func parseHeader(buf []byte) (QuoteHeader, error) {
	if len(buf) < headerLen {
		return QuoteHeader{}, newParseError(ErrTruncatedQuote, "header")
	}
	var h QuoteHeader
	h.Version = binary.LittleEndian.Uint16(buf[0:2])
	h.AttestationKeyType = binary.LittleEndian.Uint16(buf[2:4])
	h.TeeType = TeeType(binary.LittleEndian.Uint32(buf[4:8]))
	h.Reserved1 = binary.LittleEndian.Uint16(buf[8:10])
	h.Reserved2 = binary.LittleEndian.Uint16(buf[10:12])
	copy(h.QEVendorID[:], buf[12:28])
	copy(h.UserData[:], buf[28:48])
	return h, nil
}
