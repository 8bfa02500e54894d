package attest

import (
	"time"

	"github.com/canvasxyz/teekit-sub002/certchain"
	"github.com/canvasxyz/teekit-sub002/quote"
)

// TCBCallback evaluates a platform's TCB acceptability given its FMSPC
// (hex-encoded, empty if the quote's certificate carries none) and the
// parsed quote carrying the raw SVN data. The core never implements
// Intel TCB policy itself; this callback is always caller-supplied.
type TCBCallback func(fmspcHex string, q quote.Quote) bool

// MeasurementConfig maps measurement field names to expected hex values.
// Recognized keys: mrtd, rtmr0, rtmr1, rtmr2, rtmr3, mr_seam,
// mr_seam_signer, mr_config_id, mr_owner, mr_owner_config, mr_enclave,
// mr_signer, isv_prod_id, isv_svn, measurement, report_data. An empty
// map matches every quote.
type MeasurementConfig map[string]string

// MeasurementFunc is a callback-shaped measurement predicate.
type MeasurementFunc func(q quote.Quote) bool

// MeasurementPredicate is any of: nil (no constraint), a MeasurementConfig,
// a MeasurementFunc, or a []any mixing the two, evaluated with OR across
// elements. An empty []any never matches.
type MeasurementPredicate any

// Options carries every caller-injected input the verifier needs: the
// fields the spec enumerates under "opts" in §4.3.
type Options struct {
	VerificationInstant time.Time
	CRLs                []*certchain.CRL
	ExtraCertData       []*certchain.Cert
	PinnedRoots         *certchain.PinnedRoots
	VerifyTCB           TCBCallback
	VerifyMeasurements  MeasurementPredicate
	// MaxVMPL bounds SEV-SNP's reported VMPL; nil means unchecked.
	MaxVMPL *int
}

func (o Options) pinnedRoots() *certchain.PinnedRoots {
	if o.PinnedRoots != nil {
		return o.PinnedRoots
	}
	return certchain.DefaultPinnedRoots()
}

func (o Options) verificationInstant() time.Time {
	if o.VerificationInstant.IsZero() {
		return time.Now()
	}
	return o.VerificationInstant
}
