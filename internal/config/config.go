// Package config loads process configuration for the cmd/ entrypoints via
// viper, following the layered env-var/flag/file convention used elsewhere
// in the corpus (r3e-network-service_layer, r3e-network-neo_service_layer).
// The core verification and tunnel packages never depend on this package;
// it is strictly an ambient concern of the demo binaries.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the full set of knobs the demo CLI entrypoints understand.
type Config struct {
	// ListenAddr is the tunnel control-channel listen address for
	// cmd/tunneld, e.g. ":8443".
	ListenAddr string `mapstructure:"listen_addr"`

	// MetricsAddr is the Prometheus /metrics listen address.
	MetricsAddr string `mapstructure:"metrics_addr"`

	// LogLevel is passed straight through to internal/telemetry.
	LogLevel string `mapstructure:"log_level"`

	// Development toggles console-friendly logging.
	Development bool `mapstructure:"development"`

	// PinnedRootsOverridePath names a PEM bundle of replacement roots for
	// test use. It is only loaded into Config: no command in this module
	// reads the file it names.
	PinnedRootsOverridePath string `mapstructure:"pinned_roots_override_path"`

	// TCBPolicyPath names a TCB info JSON document of the shape
	// tcbpolicy.FromJSON parses. It is only loaded into Config: no command
	// in this module reads the file it names.
	TCBPolicyPath string `mapstructure:"tcb_policy_path"`
}

// Default returns the zero-configuration defaults used when no file or
// environment override is present.
func Default() Config {
	return Config{
		ListenAddr:  ":8443",
		MetricsAddr: ":9090",
		LogLevel:    "info",
	}
}

// Load reads configuration from an optional file path, environment
// variables prefixed TUNNEL_, and falls back to Default() for anything
// unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	cfg := Default()

	v.SetEnvPrefix("TUNNEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("development", cfg.Development)
	v.SetDefault("pinned_roots_override_path", cfg.PinnedRootsOverridePath)
	v.SetDefault("tcb_policy_path", cfg.TCBPolicyPath)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
