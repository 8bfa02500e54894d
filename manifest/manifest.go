// Package manifest defines the pure data type describing a deployed
// application image. Loading one from cloud metadata or a launcher
// config is out of scope for this module; Manifest exists only so a
// caller that does have one can validate its shape before handing it to
// whatever out-of-scope launcher consumes it.
package manifest

import (
	"encoding/hex"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
)

// Manifest describes one deployable application: its name and the
// expected SHA-256 digest of its image, hex-encoded.
type Manifest struct {
	App    string `json:"app"`
	SHA256 string `json:"sha256"`
}

// Validate checks that App is non-empty and SHA256 is a well-formed
// 32-byte hex digest.
func (m Manifest) Validate() error {
	if m.App == "" {
		return errs.New(errs.KindPolicy, "missing_app", "")
	}
	raw, err := hex.DecodeString(m.SHA256)
	if err != nil {
		return errs.Wrap(errs.KindPolicy, "malformed_sha256", err)
	}
	if len(raw) != 32 {
		return errs.New(errs.KindPolicy, "wrong_sha256_length", m.SHA256)
	}
	return nil
}
