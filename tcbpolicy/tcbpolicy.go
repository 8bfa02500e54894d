// Package tcbpolicy provides a reference TCB acceptance policy that
// normalizes Intel's two TCB JSON component representations — legacy
// sgxtcbcompXXsvn keys and the newer sgxtcbcomponents/tdxtcbcomponents
// arrays — into one shape so a policy author only has to reason about
// one. The core attestation verifier never does this normalization
// itself; it treats the TCB callback as opaque, per its contract.
package tcbpolicy

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Components is a normalized 16-entry SVN vector, index 0 == component 01.
type Components [16]uint8

// TCBLevel is one entry of an Intel TCB info JSON document's tcbLevels
// array, after normalizing both historical component shapes.
type TCBLevel struct {
	SGXComponents Components
	TDXComponents Components
	PCESVN        uint16
	Status        string
}

// Policy evaluates a parsed set of TCB levels against a platform's
// reported SVNs and returns whether the platform's TCB is acceptable.
type Policy struct {
	Levels []TCBLevel
	// Accept lists the status strings treated as passing; an empty
	// slice defaults to just "UpToDate".
	Accept []string
}

type rawComponent struct {
	SVN uint8 `json:"svn"`
}

type rawTCB struct {
	PCESVN        uint16                     `json:"pcesvn"`
	SGXComponents []rawComponent             `json:"sgxtcbcomponents"`
	TDXComponents []rawComponent             `json:"tdxtcbcomponents"`
	Legacy        map[string]json.RawMessage `json:"-"`
}

type rawTCBLevel struct {
	TCB       rawTCB `json:"tcb"`
	TCBStatus string `json:"tcbStatus"`
}

type rawTCBInfo struct {
	TCBLevels []rawTCBLevel `json:"tcbLevels"`
}

type rawEnvelope struct {
	TCBInfo *rawTCBInfo `json:"tcbInfo"`
}

// FromJSON parses an Intel TCB info document (either the bare "tcbInfo"
// object, or the signed envelope {"tcbInfo": {...}, "signature": ...})
// into a Policy. It accepts both the legacy per-component keys
// (sgxtcbcomp01svn..sgxtcbcomp16svn) and the array form
// (sgxtcbcomponents / tdxtcbcomponents, each element {"svn": N}).
func FromJSON(raw []byte) (*Policy, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	info := env.TCBInfo
	if info == nil {
		info = &rawTCBInfo{}
		if err := json.Unmarshal(raw, info); err != nil {
			return nil, err
		}
	}

	// Legacy keys live alongside "tcb"'s other fields; decode each
	// level's tcb object a second time as a flat map to recover them.
	var flatLevels []struct {
		TCB       map[string]json.RawMessage `json:"tcb"`
		TCBStatus string                     `json:"tcbStatus"`
	}
	var flatDoc struct {
		TCBInfo *struct {
			TCBLevels []struct {
				TCB       map[string]json.RawMessage `json:"tcb"`
				TCBStatus string                     `json:"tcbStatus"`
			} `json:"tcbLevels"`
		} `json:"tcbInfo"`
	}
	if err := json.Unmarshal(raw, &flatDoc); err == nil && flatDoc.TCBInfo != nil {
		flatLevels = flatDoc.TCBInfo.TCBLevels
	} else {
		var bareFlatDoc struct {
			TCBLevels []struct {
				TCB       map[string]json.RawMessage `json:"tcb"`
				TCBStatus string                     `json:"tcbStatus"`
			} `json:"tcbLevels"`
		}
		_ = json.Unmarshal(raw, &bareFlatDoc)
		flatLevels = bareFlatDoc.TCBLevels
	}

	levels := make([]TCBLevel, 0, len(info.TCBLevels))
	for i, lvl := range info.TCBLevels {
		legacy := map[string]json.RawMessage{}
		if i < len(flatLevels) {
			legacy = flatLevels[i].TCB
		}
		levels = append(levels, TCBLevel{
			SGXComponents: normalizeComponents(lvl.TCB.SGXComponents, legacy, "sgxtcbcomp"),
			TDXComponents: normalizeComponents(lvl.TCB.TDXComponents, legacy, "tdxtcbcomp"),
			PCESVN:        lvl.TCB.PCESVN,
			Status:        lvl.TCBStatus,
		})
	}
	return &Policy{Levels: levels}, nil
}

func normalizeComponents(arr []rawComponent, legacy map[string]json.RawMessage, prefix string) Components {
	var out Components
	if len(arr) > 0 {
		for i, c := range arr {
			if i >= 16 {
				break
			}
			out[i] = c.SVN
		}
		return out
	}
	for key, v := range legacy {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "svn") {
			continue
		}
		numPart := strings.TrimSuffix(strings.TrimPrefix(key, prefix), "svn")
		idx, err := strconv.Atoi(numPart)
		if err != nil || idx < 1 || idx > 16 {
			continue
		}
		var n int
		if err := json.Unmarshal(v, &n); err != nil {
			continue
		}
		out[idx-1] = uint8(n)
	}
	return out
}

// Accepts reports whether reported meets or exceeds any TCB level in the
// policy whose status is acceptable. family selects which component
// vector ("sgx" or "tdx") to compare.
func (p *Policy) Accepts(family string, reported Components, pcesvn uint16) bool {
	accept := p.Accept
	if len(accept) == 0 {
		accept = []string{"UpToDate"}
	}
	for _, lvl := range p.Levels {
		if !statusAccepted(lvl.Status, accept) {
			continue
		}
		required := lvl.SGXComponents
		if family == "tdx" {
			required = lvl.TDXComponents
		}
		if pcesvn < lvl.PCESVN {
			continue
		}
		if componentsMeet(reported, required) {
			return true
		}
	}
	return false
}

func componentsMeet(reported, required Components) bool {
	for i := range required {
		if reported[i] < required[i] {
			return false
		}
	}
	return true
}

func statusAccepted(status string, accept []string) bool {
	for _, a := range accept {
		if a == status {
			return true
		}
	}
	return false
}
