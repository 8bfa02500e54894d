package quote

import "encoding/binary"

const tdReport10Len = 584
const tdReport15ExtraLen = 64 // TeeTcbSvn2[16] + MrServiceTd[48]
const tdReport15Len = tdReport10Len + tdReport15ExtraLen

// TDReport10 is the TD 1.0 report body (TDX v4 and v5's "TD10" layout):
// 584 bytes of TCB SVN, measurement registers, and the 64-byte report
// data the tunnel handshake binds an X25519 key into.
type TDReport10 struct {
	TeeTcbSvn      [16]byte
	MrSeam         [48]byte
	MrSignerSeam   [48]byte
	SeamAttributes [8]byte
	TdAttributes   [8]byte
	Xfam           [8]byte
	MrTd           [48]byte
	MrConfigID     [48]byte
	MrOwner        [48]byte
	MrOwnerConfig  [48]byte
	Rtmr0          [48]byte
	Rtmr1          [48]byte
	Rtmr2          [48]byte
	Rtmr3          [48]byte
	ReportData     [64]byte
}

func (b TDReport10) Marshal() []byte {
	buf := make([]byte, tdReport10Len)
	off := 0
	fields := [][]byte{
		b.TeeTcbSvn[:], b.MrSeam[:], b.MrSignerSeam[:], b.SeamAttributes[:],
		b.TdAttributes[:], b.Xfam[:], b.MrTd[:], b.MrConfigID[:], b.MrOwner[:],
		b.MrOwnerConfig[:], b.Rtmr0[:], b.Rtmr1[:], b.Rtmr2[:], b.Rtmr3[:],
		b.ReportData[:],
	}
	for _, f := range fields {
		off += copy(buf[off:], f)
	}
	return buf
}

func parseTDReport10(buf []byte) (TDReport10, error) {
	if len(buf) < tdReport10Len {
		return TDReport10{}, newParseError(ErrTruncatedQuote, "td_report_10")
	}
	var b TDReport10
	off := 0
	read := func(n int) []byte {
		s := buf[off : off+n]
		off += n
		return s
	}
	copy(b.TeeTcbSvn[:], read(16))
	copy(b.MrSeam[:], read(48))
	copy(b.MrSignerSeam[:], read(48))
	copy(b.SeamAttributes[:], read(8))
	copy(b.TdAttributes[:], read(8))
	copy(b.Xfam[:], read(8))
	copy(b.MrTd[:], read(48))
	copy(b.MrConfigID[:], read(48))
	copy(b.MrOwner[:], read(48))
	copy(b.MrOwnerConfig[:], read(48))
	copy(b.Rtmr0[:], read(48))
	copy(b.Rtmr1[:], read(48))
	copy(b.Rtmr2[:], read(48))
	copy(b.Rtmr3[:], read(48))
	copy(b.ReportData[:], read(64))
	return b, nil
}

// TDReport15 is the TD 1.5 report body: TDReport10 plus a second TCB SVN
// and the service-TD measurement register introduced in TD 1.5.
type TDReport15 struct {
	TDReport10
	TeeTcbSvn2  [16]byte
	MrServiceTd [48]byte
}

func (b TDReport15) Marshal() []byte {
	buf := b.TDReport10.Marshal()
	buf = append(buf, b.TeeTcbSvn2[:]...)
	buf = append(buf, b.MrServiceTd[:]...)
	return buf
}

func parseTDReport15(buf []byte) (TDReport15, error) {
	if len(buf) < tdReport15Len {
		return TDReport15{}, newParseError(ErrTruncatedQuote, "td_report_15")
	}
	base, err := parseTDReport10(buf[:tdReport10Len])
	if err != nil {
		return TDReport15{}, err
	}
	var r TDReport15
	r.TDReport10 = base
	copy(r.TeeTcbSvn2[:], buf[tdReport10Len:tdReport10Len+16])
	copy(r.MrServiceTd[:], buf[tdReport10Len+16:tdReport10Len+64])
	return r, nil
}

// TDXV4Quote is a TDX v4 DCAP quote: header + TD10 report + ECDSA
// signature data. header.Version must equal 4.
type TDXV4Quote struct {
	Header    QuoteHeader
	Body      TDReport10
	Signature Signature
}

func (q *TDXV4Quote) Family() TeeType      { return TeeTypeTDX }
func (q *TDXV4Quote) ReportData() [64]byte { return q.Body.ReportData }

func (q *TDXV4Quote) SignedRegion() []byte {
	h := q.Header.Marshal()
	b := q.Body.Marshal()
	return append(h, b...)
}

func (q *TDXV4Quote) CertData() ([]byte, bool) {
	return extractCertData(q.Signature.CertificationData)
}

func parseTDXV4Quote(hdr QuoteHeader, raw []byte) (*TDXV4Quote, error) {
	if len(raw) < headerLen+tdReport10Len {
		return nil, newParseError(ErrTruncatedQuote, "tdx v4 body")
	}
	body, err := parseTDReport10(raw[headerLen : headerLen+tdReport10Len])
	if err != nil {
		return nil, err
	}
	sig, err := parseSignature(raw, headerLen+tdReport10Len)
	if err != nil {
		return nil, err
	}
	return &TDXV4Quote{Header: hdr, Body: body, Signature: sig}, nil
}

// TDBodyDescriptorType selects which report layout a TDX v5 quote carries.
type TDBodyDescriptorType uint16

const (
	TDBodyTD10 TDBodyDescriptorType = 2
	TDBodyTD15 TDBodyDescriptorType = 3
)

// TDBodyDescriptor is the TDX v5-only 4-byte prefix (type+size) that
// selects between the TD10 and TD15 report layouts.
type TDBodyDescriptor struct {
	Type TDBodyDescriptorType
	Size uint32
}

// TDXV5Quote is a TDX v5 DCAP quote. v5 inserts a body descriptor between
// the header and the report body so a single quote format can carry
// either a TD10 or TD15 report; Body holds whichever was selected, as the
// Quote interface's TDReport10-or-TDReport15 concrete type.
type TDXV5Quote struct {
	Header         QuoteHeader
	BodyDescriptor TDBodyDescriptor
	Body           any // TDReport10 or TDReport15
	Signature      Signature
}

func (q *TDXV5Quote) Family() TeeType { return TeeTypeTDX }

func (q *TDXV5Quote) ReportData() [64]byte {
	switch b := q.Body.(type) {
	case TDReport10:
		return b.ReportData
	case TDReport15:
		return b.ReportData
	default:
		return [64]byte{}
	}
}

func (q *TDXV5Quote) bodyMarshal() []byte {
	switch b := q.Body.(type) {
	case TDReport10:
		return b.Marshal()
	case TDReport15:
		return b.Marshal()
	default:
		return nil
	}
}

func (q *TDXV5Quote) SignedRegion() []byte {
	h := q.Header.Marshal()
	bd := make([]byte, 4)
	binary.LittleEndian.PutUint16(bd[0:2], uint16(q.BodyDescriptor.Type))
	binary.LittleEndian.PutUint16(bd[2:4], uint16(q.BodyDescriptor.Size))
	body := q.bodyMarshal()
	out := make([]byte, 0, len(h)+len(bd)+len(body))
	out = append(out, h...)
	out = append(out, bd...)
	out = append(out, body...)
	return out
}

func (q *TDXV5Quote) CertData() ([]byte, bool) {
	return extractCertData(q.Signature.CertificationData)
}

func parseTDXV5Quote(hdr QuoteHeader, raw []byte) (*TDXV5Quote, error) {
	if len(raw) < headerLen+4 {
		return nil, newParseError(ErrTruncatedQuote, "tdx v5 body descriptor")
	}
	descType := TDBodyDescriptorType(binary.LittleEndian.Uint16(raw[headerLen : headerLen+2]))
	descSize := uint32(binary.LittleEndian.Uint16(raw[headerLen+2 : headerLen+4]))
	bodyStart := headerLen + 4

	var body any
	var bodyLen int
	switch descType {
	case TDBodyTD10:
		b, err := parseTDReport10(raw[bodyStart:])
		if err != nil {
			return nil, err
		}
		body, bodyLen = b, tdReport10Len
	case TDBodyTD15:
		b, err := parseTDReport15(raw[bodyStart:])
		if err != nil {
			return nil, err
		}
		body, bodyLen = b, tdReport15Len
	default:
		return nil, newParseError(ErrUnsupportedVersion, "tdx v5 body descriptor type")
	}

	sig, err := parseSignature(raw, bodyStart+bodyLen)
	if err != nil {
		return nil, err
	}

	return &TDXV5Quote{
		Header:         hdr,
		BodyDescriptor: TDBodyDescriptor{Type: descType, Size: descSize},
		Body:           body,
		Signature:      sig,
	}, nil
}
