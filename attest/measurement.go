package attest

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/canvasxyz/teekit-sub002/quote"
)

// evaluateMeasurements implements the OR-across-elements measurement
// predicate described in the spec's §4.3.1: a nil predicate imposes no
// constraint, a single MeasurementConfig or MeasurementFunc is evaluated
// directly, and a []any sequence succeeds if any element matches (an
// empty sequence never matches).
func evaluateMeasurements(q quote.Quote, pred MeasurementPredicate) bool {
	switch p := pred.(type) {
	case nil:
		return true
	case MeasurementConfig:
		return matchConfig(q, p)
	case MeasurementFunc:
		return p(q)
	case []any:
		if len(p) == 0 {
			return false
		}
		for _, elem := range p {
			if evaluateMeasurements(q, elem) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func matchConfig(q quote.Quote, cfg MeasurementConfig) bool {
	if len(cfg) == 0 {
		return true
	}
	for key, expected := range cfg {
		actual, ok := measurementField(q, key)
		if !ok {
			return false
		}
		if !strings.EqualFold(actual, expected) {
			return false
		}
	}
	return true
}

func measurementField(q quote.Quote, key string) (string, bool) {
	switch v := q.(type) {
	case *quote.SGXQuote:
		switch key {
		case "mr_enclave":
			return hex.EncodeToString(v.Body.MREnclave[:]), true
		case "mr_signer":
			return hex.EncodeToString(v.Body.MRSigner[:]), true
		case "isv_prod_id":
			return strconv.FormatUint(uint64(v.Body.ISVProdID), 16), true
		case "isv_svn":
			return strconv.FormatUint(uint64(v.Body.ISVSVN), 16), true
		case "report_data":
			return hex.EncodeToString(v.Body.ReportData[:]), true
		}
	case *quote.TDXV4Quote:
		return tdReportField(v.Body, key)
	case *quote.TDXV5Quote:
		switch b := v.Body.(type) {
		case quote.TDReport10:
			return tdReportField(b, key)
		case quote.TDReport15:
			return tdReportField(b.TDReport10, key)
		}
	case *quote.SevSnpReport:
		switch key {
		case "measurement":
			return hex.EncodeToString(v.Body.Measurement[:]), true
		case "report_data":
			return hex.EncodeToString(v.Body.ReportData[:]), true
		}
	}
	return "", false
}

func tdReportField(b quote.TDReport10, key string) (string, bool) {
	switch key {
	case "mrtd":
		return hex.EncodeToString(b.MrTd[:]), true
	case "rtmr0":
		return hex.EncodeToString(b.Rtmr0[:]), true
	case "rtmr1":
		return hex.EncodeToString(b.Rtmr1[:]), true
	case "rtmr2":
		return hex.EncodeToString(b.Rtmr2[:]), true
	case "rtmr3":
		return hex.EncodeToString(b.Rtmr3[:]), true
	case "mr_seam":
		return hex.EncodeToString(b.MrSeam[:]), true
	case "mr_seam_signer":
		return hex.EncodeToString(b.MrSignerSeam[:]), true
	case "mr_config_id":
		return hex.EncodeToString(b.MrConfigID[:]), true
	case "mr_owner":
		return hex.EncodeToString(b.MrOwner[:]), true
	case "mr_owner_config":
		return hex.EncodeToString(b.MrOwnerConfig[:]), true
	case "report_data":
		return hex.EncodeToString(b.ReportData[:]), true
	}
	return "", false
}
