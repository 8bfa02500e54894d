package attest

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/canvasxyz/teekit-sub002/binding"
)

// AzureCLIOutput is the parsed shape of Azure's trust-authority CLI
// attestation output: a TDX quote plus the vTPM runtime_data/user_data/
// nonce blobs the quote's report_data binds.
type AzureCLIOutput struct {
	Quote       []byte
	RuntimeData []byte
	UserData    []byte
	Nonce       []byte
}

type azureCLIOutputJSON struct {
	Quote       []byte `json:"quote"`
	RuntimeData []byte `json:"runtime_data"`
	UserData    []byte `json:"user_data"`
	Nonce       []byte `json:"nonce"`
}

// ParseAzureCLIOutput decodes the CLI tool's JSON output, whose
// base64-encoded fields encoding/json decodes automatically for []byte.
func ParseAzureCLIOutput(raw []byte) (*AzureCLIOutput, error) {
	var doc azureCLIOutputJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, newErr(ErrPolicy, "invalid azure cli output: "+err.Error())
	}
	return &AzureCLIOutput{
		Quote:       doc.Quote,
		RuntimeData: doc.RuntimeData,
		UserData:    doc.UserData,
		Nonce:       doc.Nonce,
	}, nil
}

// VerifyAzureTDX wraps VerifyTDX with the additional vTPM runtime-data
// binding Azure's attestation flow requires (spec §4.3 "Azure TDX
// additional step").
func VerifyAzureTDX(cliOutput []byte, opts Options) bool {
	return VerifyAzureTDXResult(cliOutput, opts).Valid
}

// VerifyAzureTDXResult is VerifyAzureTDX with introspection on failure.
func VerifyAzureTDXResult(cliOutput []byte, opts Options) Result {
	out, err := ParseAzureCLIOutput(cliOutput)
	if err != nil {
		return Result{Err: err}
	}

	res := VerifyTDXResult(out.Quote, opts)
	if res.Err != nil {
		return res
	}

	reportData := res.Quote.ReportData()
	if !binding.CheckAzure(reportData, out.RuntimeData) {
		return Result{Quote: res.Quote, Err: newErr(ErrBinding, "runtime_data binding mismatch")}
	}

	var runtimeDoc struct {
		UserData string `json:"user-data"`
	}
	if err := json.Unmarshal(out.RuntimeData, &runtimeDoc); err != nil {
		return Result{Quote: res.Quote, Err: newErr(ErrBinding, "invalid runtime_data json")}
	}

	expected := sha512.Sum512(append(append([]byte{}, out.Nonce...), out.UserData...))
	expectedHex := strings.ToUpper(hex.EncodeToString(expected[:]))
	if strings.ToUpper(runtimeDoc.UserData) != expectedHex {
		return Result{Quote: res.Quote, Err: newErr(ErrBinding, "user-data binding mismatch")}
	}

	return Result{Valid: true, Quote: res.Quote}
}
