// Package client implements the Tunnel Client Core: it dials a tunnel
// server's control channel, verifies the server's attestation quote,
// completes the X25519 key exchange, and then exposes fetch- and
// WebSocket-shaped APIs that ride the encrypted channel underneath.
package client

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/canvasxyz/teekit-sub002/attest"
	"github.com/canvasxyz/teekit-sub002/binding"
	"github.com/canvasxyz/teekit-sub002/internal/errs"
	"github.com/canvasxyz/teekit-sub002/quote"
	"github.com/canvasxyz/teekit-sub002/tunnel/protocol"
)

// reconnectAttemptTimeout bounds each background reconnect attempt; the
// delay *between* attempts is governed by c.backoff.
const reconnectAttemptTimeout = 30 * time.Second

// wireConn is the minimal duplex frame transport a Client drives; a
// gorilla *websocket.Conn (or any caller-supplied io.ReadWriter wrapped
// to this shape) satisfies it, keeping net dialing a host concern per the
// "no TLS termination, no owned transport" non-goal.
type wireConn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const textMessage = 1

// Dialer opens a fresh transport-level connection to the tunnel server.
// Reconnects call Dial again, so it must be safe to call repeatedly.
type Dialer interface {
	Dial(ctx context.Context) (wireConn, error)
}

// Options configures a Client.
type Options struct {
	Logger *zap.Logger

	// VerifyOptions is passed through to the attest package when checking
	// the server's quote at handshake time.
	VerifyOptions attest.Options

	// BindingNonce and BindingIssuedAt parametrize the TDX/SEV-SNP
	// X25519-binding report_data derivation (binding.ExpectedX25519ReportData).
	// SGX binding has no nonce channel (spec's documented Open Question) and
	// ignores both fields.
	BindingNonce    []byte
	BindingIssuedAt int64

	// OnFatal is invoked, if set, whenever a steady-state decrypt failure
	// tears the session down.
	OnFatal func(error)
}

// Client is one logical connection to a tunnel server: it owns at most
// one live transport at a time and transparently reconnects using
// protocol.Backoff, per spec §5's single-goroutine-per-session model.
type Client struct {
	dialer  Dialer
	opts    Options
	logger  *zap.Logger
	backoff *protocol.Backoff

	mu         sync.Mutex
	conn       wireConn
	state      protocol.SessionState
	serverPub  [32]byte
	symKey     [32]byte
	quote      quote.Quote
	connecting chan struct{} // non-nil while a connect attempt is in flight
	connErr    error
	closed     bool

	pendingMu sync.Mutex
	pending   map[string]chan protocol.HTTPResponse

	wsMu    sync.Mutex
	wsConns map[string]*WebSocket

	dispatcher *protocol.Dispatcher
}

// New constructs a Client. No connection is made until EnsureConnection,
// Fetch, or Dial is first called.
func New(dialer Dialer, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		dialer:  dialer,
		opts:    opts,
		logger:  logger.Named("tunnel.client"),
		backoff: protocol.NewBackoff(),
		state:   protocol.StateInit,
		pending: make(map[string]chan protocol.HTTPResponse),
		wsConns: make(map[string]*WebSocket),
	}
	c.dispatcher = protocol.NewDispatcher()
	c.dispatcher.On(protocol.TypeHTTPResponse, func(msg protocol.Message) error {
		c.completeFetch(msg.(protocol.HTTPResponse))
		return nil
	})
	c.dispatcher.On(protocol.TypeWSEvent, func(msg protocol.Message) error {
		c.handleWSEvent(msg.(protocol.WSEvent))
		return nil
	})
	c.dispatcher.On(protocol.TypeWSMessage, func(msg protocol.Message) error {
		c.handleWSMessage(msg.(protocol.WSMessage))
		return nil
	})
	return c
}

// ServerPublicKey returns the server's X25519 public key negotiated
// during the last successful handshake. Only meaningful once
// EnsureConnection has returned successfully at least once.
func (c *Client) ServerPublicKey() [32]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverPub
}

// Quote returns the server's parsed attestation quote from the last
// successful handshake, for UI measurement display.
func (c *Client) Quote() quote.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quote
}

// EnsureConnection establishes the control channel if it is not already
// up, coalescing concurrent callers onto the single dial+handshake
// attempt in flight (a hand-rolled idempotent single-flight future: it
// must resolve successfully-once, never memoize a failure the way a
// generic singleflight.Group would for a retryable caller).
func (c *Client) EnsureConnection(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errs.New(errs.KindChannel, "client_closed", "")
	}
	if c.state == protocol.StateReady {
		c.mu.Unlock()
		return nil
	}
	if c.connecting != nil {
		ch := c.connecting
		c.mu.Unlock()
		select {
		case <-ch:
			c.mu.Lock()
			err := c.connErr
			c.mu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	ch := make(chan struct{})
	c.connecting = ch
	c.mu.Unlock()

	err := c.connect(ctx)

	c.mu.Lock()
	c.connErr = err
	c.connecting = nil
	c.mu.Unlock()
	close(ch)
	return err
}

func (c *Client) connect(ctx context.Context) error {
	conn, err := c.dialer.Dial(ctx)
	if err != nil {
		return errs.Wrap(errs.KindChannel, "dial_failed", err)
	}

	serverPub, symKey, parsedQuote, err := c.handshake(conn)
	if err != nil {
		conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.serverPub = serverPub
	c.symKey = symKey
	c.quote = parsedQuote
	c.state = protocol.StateReady
	c.mu.Unlock()
	c.backoff.Reset()

	go c.readLoop(conn)
	return nil
}

// handshake runs the client side of spec §4.5: read server_kx, verify its
// quote binds the announced key, seal a fresh symmetric key to the
// server, and send client_kx.
func (c *Client) handshake(conn wireConn) (serverPub [32]byte, symKey [32]byte, q quote.Quote, err error) {
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return serverPub, symKey, nil, errs.Wrap(errs.KindHandshake, "read_failed", err)
	}
	msg, err := protocol.DecodeMessage(raw)
	if err != nil {
		return serverPub, symKey, nil, errs.Wrap(errs.KindHandshake, "decode_failed", err)
	}
	kx, ok := msg.(protocol.ServerKX)
	if !ok {
		return serverPub, symKey, nil, errs.New(errs.KindHandshake, "expected_server_kx", string(protocol.Kind(msg)))
	}
	copy(serverPub[:], kx.X25519PublicKey)

	q, err = c.verifyServerQuote(kx.Quote, serverPub)
	if err != nil {
		return serverPub, symKey, nil, err
	}

	if _, err := rand.Read(symKey[:]); err != nil {
		return serverPub, symKey, nil, errs.Wrap(errs.KindHandshake, "keygen_failed", err)
	}
	sealed, err := protocol.SealSymmetricKey(serverPub, symKey)
	if err != nil {
		return serverPub, symKey, nil, err
	}
	ack := protocol.ClientKX{Type: protocol.TypeClientKX, SealedSymmetricKey: sealed}
	ackRaw, err := protocol.Encode(ack)
	if err != nil {
		return serverPub, symKey, nil, errs.Wrap(errs.KindHandshake, "encode_failed", err)
	}
	if err := conn.WriteMessage(textMessage, ackRaw); err != nil {
		return serverPub, symKey, nil, errs.Wrap(errs.KindHandshake, "write_failed", err)
	}
	return serverPub, symKey, q, nil
}

// verifyServerQuote parses raw and checks it against opts.VerifyOptions
// plus the family-appropriate report_data binding of serverPub.
func (c *Client) verifyServerQuote(raw []byte, serverPub [32]byte) (quote.Quote, error) {
	q, err := quote.Parse(raw)
	if err != nil {
		return nil, err
	}

	switch q.(type) {
	case *quote.SGXQuote:
		res := attest.VerifySGXResult(raw, c.opts.VerifyOptions)
		if !res.Valid {
			return nil, res.Err
		}
		if !binding.CheckSGX(q.ReportData(), serverPub) {
			return nil, errs.New(errs.KindBinding, "x25519_binding_mismatch", "sgx")
		}
	case *quote.TDXV4Quote, *quote.TDXV5Quote:
		res := attest.VerifyTDXResult(raw, c.opts.VerifyOptions)
		if !res.Valid {
			return nil, res.Err
		}
		if !binding.CheckX25519(q.ReportData(), c.opts.BindingNonce, c.opts.BindingIssuedAt, serverPub) {
			return nil, errs.New(errs.KindBinding, "x25519_binding_mismatch", "tdx")
		}
	case *quote.SevSnpReport:
		res := attest.VerifySEVSNPResult(raw, c.opts.VerifyOptions)
		if !res.Valid {
			return nil, res.Err
		}
		if !binding.CheckX25519(q.ReportData(), c.opts.BindingNonce, c.opts.BindingIssuedAt, serverPub) {
			return nil, errs.New(errs.KindBinding, "x25519_binding_mismatch", "sevsnp")
		}
	default:
		return nil, errs.New(errs.KindParse, "unsupported_quote_family", "")
	}
	return q, nil
}

// readLoop drains conn until it closes or a steady-state decrypt failure
// makes the session fatal, then cancels every pending Fetch and
// WebSocket on this connection (spec §5's cancellation cascade).
func (c *Client) readLoop(conn wireConn) {
	var readErr error
	var fatalErr error
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			readErr = err
			break
		}
		msg, err := protocol.DecodeMessage(raw)
		if err != nil {
			c.logger.Debug("dropping undecodable frame", zap.Error(err))
			continue
		}
		env, ok := msg.(protocol.Envelope)
		if !ok {
			c.logger.Warn("dropping unexpected plaintext", zap.String("type", string(protocol.Kind(msg))))
			continue
		}
		plaintext, err := protocol.OpenEnvelope(c.currentKey(), &env)
		if err != nil {
			fatalErr = err
			break
		}
		if err := c.dispatcher.DecodeAndDispatch(plaintext); err != nil {
			c.logger.Debug("dropping undecodable envelope contents", zap.Error(err))
		}
	}

	c.mu.Lock()
	c.state = protocol.StateClosed
	c.conn = nil
	closed := c.closed
	c.mu.Unlock()

	if fatalErr != nil {
		c.logger.Warn("decrypt failed, closing session", zap.Error(fatalErr))
		if c.opts.OnFatal != nil {
			c.opts.OnFatal(fatalErr)
		}
	}
	c.cancelAll(errs.New(errs.KindChannel, "channel_closed", ""))

	if !closed && protocol.ShouldReconnect(closeCode(readErr)) {
		go c.reconnectLoop()
	}
}

// reconnectLoop retries EnsureConnection with c.backoff's doubling delay
// (reset to 1s by connect() on the next success) until it succeeds or the
// client is closed, per the tailscale-idiom backoff in tunnel/protocol.
func (c *Client) reconnectLoop() {
	for {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}

		time.Sleep(c.backoff.Next())

		c.mu.Lock()
		closed = c.closed
		c.mu.Unlock()
		if closed {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), reconnectAttemptTimeout)
		err := c.EnsureConnection(ctx)
		cancel()
		if err == nil {
			return
		}
		c.logger.Debug("reconnect attempt failed", zap.Error(err))
	}
}

// closeCode extracts a WebSocket close code from a ReadMessage error, or 0
// (not CloseCodeIntentional) if err carries none — a transport error with
// no explicit close frame still triggers the reconnect loop by default.
func closeCode(err error) int {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}

func (c *Client) currentKey() [32]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.symKey
}

func (c *Client) completeFetch(resp protocol.HTTPResponse) {
	c.pendingMu.Lock()
	ch, ok := c.pending[resp.RequestID]
	if ok {
		delete(c.pending, resp.RequestID)
	}
	c.pendingMu.Unlock()
	if !ok {
		c.logger.Debug("http_response for unknown request_id", zap.String("request_id", resp.RequestID))
		return
	}
	ch <- resp
}

// cancelAll fails every pending Fetch with err and closes every open
// WebSocket, per spec §5: "session cancellation closes every completer
// channel ... and transitions every virtual WS to Closed."
func (c *Client) cancelAll(err error) {
	c.pendingMu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan protocol.HTTPResponse)
	c.pendingMu.Unlock()
	for _, ch := range pending {
		close(ch)
	}

	c.wsMu.Lock()
	conns := c.wsConns
	c.wsConns = make(map[string]*WebSocket)
	c.wsMu.Unlock()
	for _, ws := range conns {
		ws.markClosedLocally(0, err.Error())
	}
}

func (c *Client) sendEnvelope(inner protocol.Message) error {
	c.mu.Lock()
	conn := c.conn
	key := c.symKey
	c.mu.Unlock()
	if conn == nil {
		return errs.New(errs.KindChannel, "not_connected", "")
	}

	plaintext, err := protocol.Encode(inner)
	if err != nil {
		return err
	}
	env, err := protocol.SealEnvelope(key, plaintext)
	if err != nil {
		return err
	}
	raw, err := protocol.Encode(*env)
	if err != nil {
		return err
	}
	return conn.WriteMessage(textMessage, raw)
}

// RequestInit mirrors the fetch()-shaped request options the spec's
// JavaScript-facing surface exposes.
type RequestInit struct {
	Method  string
	Headers map[string]string
	Body    io.Reader
}

// Response is a tunneled HTTP response.
type Response struct {
	Status     int
	StatusText string
	Headers    map[string]string
	Body       []byte
}

// Fetch performs one HTTP exchange over the tunnel, blocking until the
// server answers, ctx is canceled, or the channel closes.
func (c *Client) Fetch(ctx context.Context, url string, init *RequestInit) (*Response, error) {
	if err := c.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	method := "GET"
	headers := map[string]string{}
	var bodyPtr *string
	if init != nil {
		if init.Method != "" {
			method = init.Method
		}
		if init.Headers != nil {
			headers = init.Headers
		}
		if init.Body != nil {
			b, err := io.ReadAll(init.Body)
			if err != nil {
				return nil, err
			}
			s := string(b)
			bodyPtr = &s
		}
	}

	reqID := newID()
	ch := make(chan protocol.HTTPResponse, 1)
	c.pendingMu.Lock()
	c.pending[reqID] = ch
	c.pendingMu.Unlock()

	if err := c.sendEnvelope(protocol.HTTPRequest{
		Type:      protocol.TypeHTTPRequest,
		RequestID: reqID,
		Method:    method,
		URL:       url,
		Headers:   headers,
		Body:      bodyPtr,
	}); err != nil {
		c.pendingMu.Lock()
		delete(c.pending, reqID)
		c.pendingMu.Unlock()
		return nil, err
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, errs.New(errs.KindChannel, "channel_closed", "")
		}
		if resp.Error != nil {
			return nil, errs.New(errs.KindChannel, "app_handler_error", *resp.Error)
		}
		return &Response{
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Headers:    resp.Headers,
			Body:       []byte(resp.Body),
		}, nil
	case <-ctx.Done():
		c.pendingMu.Lock()
		delete(c.pending, reqID)
		c.pendingMu.Unlock()
		return nil, ctx.Err()
	}
}

func newID() string {
	return uuid.NewString()
}

// Close tears the client down: the current connection, if any, is closed
// and every pending Fetch/WebSocket is canceled.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.state = protocol.StateClosed
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	c.cancelAll(errs.New(errs.KindChannel, "channel_closed", ""))
	return nil
}
