package quote

import "encoding/binary"

// CertDataType is the type tag of a CertificationData block, per Intel's
// DCAP quote format §4.1.2.6.
type CertDataType uint16

const (
	CertDataTypePCKIdentifier   CertDataType = 1
	CertDataTypePCKCertificate  CertDataType = 4
	CertDataTypePCKCertChain    CertDataType = 5
	CertDataTypeQEReportCertData CertDataType = 6
	CertDataTypePlatformManifest CertDataType = 7
)

// CertificationData is the tagged union Intel's format nests at two
// levels: once at the top of Signature (normally carrying the PCK
// certificate chain, type 5, or a QEReportCertificationData, type 6), and
// once more inside a QEReportCertificationData's own CertificationData
// field. Callers type-switch on Data exactly as the teacher's tests do:
//
//	qeReport, ok := sig.CertificationData.Data.(QEReportCertificationData)
type CertificationData struct {
	Type CertDataType
	Data any
}

// QEReportCertificationData is the type-6 certification data payload: the
// Quoting Enclave's own report, its signature under the PCK leaf, the QE
// auth data used to bind the attestation key, and a nested
// CertificationData (usually the PCK certificate chain, type 5, as a PEM
// byte blob).
type QEReportCertificationData struct {
	EnclaveReport      EnclaveReportBody
	Signature          [64]byte
	QEAuthData         QEAuthData
	CertificationData  CertificationData
}

// QEAuthData is the variable-length auth data blob bound into the QE
// report's ReportData alongside the attestation public key.
type QEAuthData struct {
	Data []byte
}

// parseCertificationData reads a type(2)+size(4)+data(size) block from buf
// starting at off, returning the parsed union and the offset immediately
// following it.
func parseCertificationData(buf []byte, off int) (CertificationData, int, error) {
	if len(buf) < off+6 {
		return CertificationData{}, 0, newParseError(ErrTruncatedQuote, "cert_data header")
	}
	typ := CertDataType(binary.LittleEndian.Uint16(buf[off : off+2]))
	size := binary.LittleEndian.Uint32(buf[off+2 : off+6])
	dataOff := off + 6
	if len(buf) < dataOff+int(size) {
		return CertificationData{}, 0, newParseError(ErrTruncatedQuote, "cert_data body")
	}
	data := buf[dataOff : dataOff+int(size)]
	end := dataOff + int(size)

	switch typ {
	case CertDataTypeQEReportCertData:
		qe, err := parseQEReportCertData(data)
		if err != nil {
			return CertificationData{}, 0, err
		}
		return CertificationData{Type: typ, Data: qe}, end, nil
	case CertDataTypePCKCertChain, CertDataTypePCKCertificate,
		CertDataTypePCKIdentifier, CertDataTypePlatformManifest:
		return CertificationData{Type: typ, Data: append([]byte(nil), data...)}, end, nil
	default:
		return CertificationData{}, 0, newParseError(ErrInvalidCertDataType, "")
	}
}

func parseQEReportCertData(buf []byte) (QEReportCertificationData, error) {
	const enclaveReportLen = 384
	if len(buf) < enclaveReportLen+64+2 {
		return QEReportCertificationData{}, newParseError(ErrTruncatedQuote, "qe_report_cert_data")
	}
	report, err := parseEnclaveReportBody(buf[:enclaveReportLen])
	if err != nil {
		return QEReportCertificationData{}, err
	}
	off := enclaveReportLen

	var sig [64]byte
	copy(sig[:], buf[off:off+64])
	off += 64

	authLen := int(binary.LittleEndian.Uint16(buf[off : off+2]))
	off += 2
	if len(buf) < off+authLen {
		return QEReportCertificationData{}, newParseError(ErrTruncatedQuote, "qe_auth_data")
	}
	authData := append([]byte(nil), buf[off:off+authLen]...)
	off += authLen

	nested, _, err := parseCertificationData(buf, off)
	if err != nil {
		return QEReportCertificationData{}, err
	}

	return QEReportCertificationData{
		EnclaveReport:      report,
		Signature:          sig,
		QEAuthData:         QEAuthData{Data: authData},
		CertificationData:  nested,
	}, nil
}
