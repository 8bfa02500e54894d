// Command tunneld is a minimal demo host process wiring tunnel/server to
// a stub app handler and a stub quote function. It is explicitly
// non-production: a real deployment's quote function is supplied by the
// surrounding Gramine/workerd launcher, which is out of scope for this
// module.
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/canvasxyz/teekit-sub002/internal/config"
	"github.com/canvasxyz/teekit-sub002/internal/telemetry"
	"github.com/canvasxyz/teekit-sub002/tunnel/server"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:          "tunneld",
		Short:        "demo tunnel server host process",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (optional)")
	return cmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := telemetry.New(telemetry.Config{Development: cfg.Development, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv, err := server.New(stubAppHandler(), stubQuoteFunc(), server.Options{
		ListenPort: listenPort(cfg.ListenAddr),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(srv.ServeHTTP))
	mux.Handle("/metrics", promhttp.Handler())

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}

	go func() {
		logger.Info("tunnel control channel listening", zap.String("addr", cfg.ListenAddr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("control channel server stopped", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpSrv.Shutdown(ctx)
	metricsSrv.Shutdown(ctx)
	return nil
}

// stubAppHandler answers every request with a fixed 200, standing in for
// a real host app wired via server.AdaptHandler.
func stubAppHandler() server.AppHandler {
	return server.AdaptHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("tunneld demo: no host app wired"))
	}))
}

// stubQuoteFunc stands in for the launcher-supplied quote function: it
// returns an empty quote, which the client rejects when parsing it whatever
// its VerifyOptions, so no client completes a handshake with this server.
// cmd/tunneld is a wiring demo, not a deployable server.
func stubQuoteFunc() server.QuoteFunc {
	return func(ctx context.Context, pub [32]byte) ([]byte, error) {
		return nil, nil
	}
}

func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}
