// Package server implements the Tunnel Server Core: a host-app-agnostic
// synthesis of HTTP exchanges and virtual WebSocket sessions over an
// attested, encrypted control channel.
package server

import (
	"context"
	"crypto/rand"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/nacl/box"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
	"github.com/canvasxyz/teekit-sub002/internal/metrics"
)

// AppHandler is the opaque request/response function the tunnel server
// drives: "synthesize an in-process HTTP exchange against the host app"
// without the core ever opening a real socket to it.
type AppHandler func(*http.Request) (*http.Response, error)

// QuoteFunc produces a quote whose report_data binds pub, delegated to the
// surrounding TEE launcher (out of scope for this module per spec §1). ctx
// carries the session's handshake deadline/cancellation through to whatever
// out-of-process attestation call the launcher makes to produce the quote.
type QuoteFunc func(ctx context.Context, pub [32]byte) ([]byte, error)

// Options configures a Server.
type Options struct {
	// ListenPort is the server's own control-channel listen port. A
	// ws_connect whose URL names a different port is rejected (spec
	// invariant 10, "no outbound proxying").
	ListenPort int

	Logger *zap.Logger
}

// Server is the tunnel server core. One Server handles any number of
// concurrent sessions; it holds only process-wide state (the X25519
// keypair, the app handler, the quote function) — all per-session state
// lives in session.
type Server struct {
	appHandler AppHandler
	quoteFn    QuoteFunc
	opts       Options
	logger     *zap.Logger

	publicKey  [32]byte
	privateKey [32]byte

	wss *wsServerImpl

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// New constructs a Server with a freshly generated process-wide X25519
// keypair, per spec §5: "the server's X25519 keypair is process-wide,
// generated at startup; it does not need to persist across restarts."
func New(appHandler AppHandler, quoteFn QuoteFunc, opts Options) (*Server, error) {
	if appHandler == nil {
		return nil, errs.New(errs.KindPolicy, "missing_app_handler", "")
	}
	if quoteFn == nil {
		return nil, errs.New(errs.KindPolicy, "missing_quote_fn", "")
	}
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errs.Wrap(errs.KindHandshake, "keygen_failed", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		appHandler: appHandler,
		quoteFn:    quoteFn,
		opts:       opts,
		logger:     logger.Named("tunnel.server"),
		publicKey:  *pub,
		privateKey: *priv,
		wss:        newWSServer(),
		sessions:   make(map[*session]struct{}),
	}, nil
}

// WSS returns the abstract WebSocket-server view the host app registers
// its OnConnection callback against.
func (s *Server) WSS() WSServer { return s.wss }

// PublicKey returns the server's process-wide X25519 public key.
func (s *Server) PublicKey() [32]byte { return s.publicKey }

func (s *Server) trackSession(sess *session) {
	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	metrics.TunnelSessionsActive.Inc()
	s.mu.Unlock()
}

func (s *Server) untrackSession(sess *session) {
	s.mu.Lock()
	if _, ok := s.sessions[sess]; ok {
		delete(s.sessions, sess)
		metrics.TunnelSessionsActive.Dec()
	}
	s.mu.Unlock()
}
