// Command qvlctl is an offline quote verification CLI: it never touches
// the network itself, reading a quote and a measurement document from
// files on disk and reporting accept/reject, matching the "deterministic and
// testable offline" requirement of the verifier it drives.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canvasxyz/teekit-sub002/attest"
	"github.com/canvasxyz/teekit-sub002/quote"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qvlctl",
		Short: "offline SGX/TDX/SEV-SNP quote verification",
	}
	cmd.AddCommand(verifyCmd())
	return cmd
}

func verifyCmd() *cobra.Command {
	var family string
	var quotePath string
	var measurementsPath string

	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "verify a quote against a measurement document",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, family, quotePath, measurementsPath)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "quote family: sgx, tdx, sevsnp (required)")
	cmd.Flags().StringVar(&quotePath, "quote", "", "path to a base64-encoded quote file (required)")
	cmd.Flags().StringVar(&measurementsPath, "measurements", "", "path to a JSON measurement config")
	cmd.MarkFlagRequired("family")
	cmd.MarkFlagRequired("quote")
	return cmd
}

func runVerify(cmd *cobra.Command, family, quotePath, measurementsPath string) error {
	quoteB64, err := os.ReadFile(quotePath)
	if err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(quoteB64)))
	if err != nil {
		return err
	}
	if _, err := quote.Parse(decoded); err != nil {
		return err
	}

	opts := attest.Options{}
	if measurementsPath != "" {
		doc, err := os.ReadFile(measurementsPath)
		if err != nil {
			return err
		}
		var cfg attest.MeasurementConfig
		if err := json.Unmarshal(doc, &cfg); err != nil {
			return err
		}
		opts.VerifyMeasurements = cfg
	}

	var result attest.Result
	switch family {
	case "sgx":
		result = attest.VerifySGXResult(decoded, opts)
	case "tdx":
		result = attest.VerifyTDXResult(decoded, opts)
	case "sevsnp":
		result = attest.VerifySEVSNPResult(decoded, opts)
	default:
		return fmt.Errorf("unknown family %q: want sgx, tdx, or sevsnp", family)
	}

	out := verifyOutput{Valid: result.Valid}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

type verifyOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
