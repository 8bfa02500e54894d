package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
	"github.com/canvasxyz/teekit-sub002/internal/metrics"
	"github.com/canvasxyz/teekit-sub002/tunnel/protocol"
)

// wireConn is the subset of *websocket.Conn a session needs; gorilla's
// *websocket.Conn satisfies it directly (duck typing), which keeps the
// handshake/dispatch logic testable against an in-memory fake.
type wireConn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// textMessage mirrors gorilla/websocket.TextMessage's wire value (1),
// duplicated here so this file has no import-time dependency on gorilla.
const textMessage = 1

// session drives one control-channel connection's handshake and, once
// Ready, its HTTP and WebSocket multiplexing. The goroutine that owns
// conn's read loop drives the session; state, symKey and wsConns are
// guarded by stateMu, keyMu and wsMu, and writes by writeMu, because
// virtualWS.Send and virtualWS.Close run on application goroutines.
type session struct {
	srv    *Server
	conn   wireConn
	logger *zap.Logger

	stateMu sync.Mutex
	state   protocol.SessionState

	keyMu  sync.Mutex
	symKey [32]byte

	wsMu    sync.Mutex
	wsConns map[string]*virtualWS

	writeMu sync.Mutex // serializes conn.WriteMessage across goroutines

	dispatcher *protocol.Dispatcher
}

func newSession(srv *Server, conn wireConn) *session {
	sess := &session{
		srv:     srv,
		conn:    conn,
		logger:  srv.logger,
		state:   protocol.StateInit,
		wsConns: make(map[string]*virtualWS),
	}
	sess.dispatcher = protocol.NewDispatcher()
	sess.dispatcher.On(protocol.TypeHTTPRequest, func(msg protocol.Message) error {
		sess.handleHTTPRequest(msg.(protocol.HTTPRequest))
		return nil
	})
	sess.dispatcher.On(protocol.TypeWSConnect, func(msg protocol.Message) error {
		sess.handleWSConnect(msg.(protocol.WSConnect))
		return nil
	})
	sess.dispatcher.On(protocol.TypeWSMessage, func(msg protocol.Message) error {
		sess.handleWSMessage(msg.(protocol.WSMessage))
		return nil
	})
	sess.dispatcher.On(protocol.TypeWSClose, func(msg protocol.Message) error {
		sess.handleWSClose(msg.(protocol.WSClose))
		return nil
	})
	return sess
}

func (sess *session) run(ctx context.Context) {
	if err := sess.handshake(ctx); err != nil {
		sess.logger.Warn("tunnel handshake failed", zap.Error(err))
		metrics.TunnelHandshakeTotal.WithLabelValues("error").Inc()
		sess.conn.Close()
		return
	}
	metrics.TunnelHandshakeTotal.WithLabelValues("ok").Inc()
	sess.loop()
}

func (sess *session) setState(s protocol.SessionState) {
	sess.stateMu.Lock()
	sess.state = s
	sess.stateMu.Unlock()
}

func (sess *session) currentKey() [32]byte {
	sess.keyMu.Lock()
	defer sess.keyMu.Unlock()
	return sess.symKey
}

func (sess *session) writeRaw(raw []byte) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	return sess.conn.WriteMessage(textMessage, raw)
}

// handshake runs the server side of spec §4.5: announce server_kx
// immediately, then block for exactly one client_kx before anything else
// is processed.
func (sess *session) handshake(ctx context.Context) error {
	sess.setState(protocol.StateKxAwaitServer)

	quoteBytes, err := sess.srv.quoteFn(ctx, sess.srv.publicKey)
	if err != nil {
		return errs.Wrap(errs.KindHandshake, "quote_fn_failed", err)
	}

	kx := protocol.ServerKX{
		Type:            protocol.TypeServerKX,
		X25519PublicKey: sess.srv.publicKey[:],
		Quote:           quoteBytes,
	}
	raw, err := protocol.Encode(kx)
	if err != nil {
		return errs.Wrap(errs.KindHandshake, "encode_failed", err)
	}
	if err := sess.writeRaw(raw); err != nil {
		return errs.Wrap(errs.KindHandshake, "write_failed", err)
	}
	sess.setState(protocol.StateKxAwaitClientAck)

	_, raw, err = sess.conn.ReadMessage()
	if err != nil {
		return errs.Wrap(errs.KindHandshake, "read_failed", err)
	}
	msg, err := protocol.DecodeMessage(raw)
	if err != nil {
		return errs.Wrap(errs.KindHandshake, "decode_failed", err)
	}
	if !protocol.AllowsPlaintext(protocol.StateKxAwaitClientAck, protocol.Kind(msg)) {
		return errs.New(errs.KindHandshake, "expected_client_kx", string(protocol.Kind(msg)))
	}
	ck, ok := msg.(protocol.ClientKX)
	if !ok {
		return errs.New(errs.KindHandshake, "expected_client_kx", "")
	}

	key, err := protocol.OpenSymmetricKey(sess.srv.publicKey, sess.srv.privateKey, ck.SealedSymmetricKey)
	if err != nil {
		return err
	}
	sess.keyMu.Lock()
	sess.symKey = key
	sess.keyMu.Unlock()
	sess.setState(protocol.StateReady)
	return nil
}

// loop processes the Ready-state steady stream of encrypted envelopes
// until the connection closes or a decrypt failure makes the session
// fatal, per spec §7 ("no silent drop of post-handshake enc frames").
func (sess *session) loop() {
	defer sess.teardown()
	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := protocol.DecodeMessage(raw)
		if err != nil {
			sess.logger.Debug("dropping undecodable frame", zap.Error(err))
			continue
		}
		env, isEnvelope := msg.(protocol.Envelope)
		if !isEnvelope {
			sess.logger.Warn("dropping unexpected plaintext after handshake",
				zap.String("type", string(protocol.Kind(msg))))
			continue
		}
		plaintext, err := protocol.OpenEnvelope(sess.currentKey(), &env)
		if err != nil {
			sess.logger.Warn("decrypt failed, closing session", zap.Error(err))
			return
		}
		if err := sess.dispatcher.DecodeAndDispatch(plaintext); err != nil {
			sess.logger.Debug("dropping undecodable envelope contents", zap.Error(err))
		}
	}
}

func (sess *session) sendEnvelope(inner protocol.Message) {
	plaintext, err := protocol.Encode(inner)
	if err != nil {
		sess.logger.Error("encode failed", zap.Error(err))
		return
	}
	env, err := protocol.SealEnvelope(sess.currentKey(), plaintext)
	if err != nil {
		sess.logger.Error("seal failed", zap.Error(err))
		return
	}
	raw, err := protocol.Encode(*env)
	if err != nil {
		sess.logger.Error("encode envelope failed", zap.Error(err))
		return
	}
	if err := sess.writeRaw(raw); err != nil {
		sess.logger.Debug("write failed", zap.Error(err))
	}
}

func (sess *session) handleHTTPRequest(req protocol.HTTPRequest) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = stringReader(*req.Body)
	}
	httpReq := httptest.NewRequest(req.Method, req.URL, bodyReader)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := sess.srv.appHandler(httpReq)
	if err != nil {
		errMsg := err.Error()
		sess.sendEnvelope(protocol.HTTPResponse{
			Type:       protocol.TypeHTTPResponse,
			RequestID:  req.RequestID,
			Status:     http.StatusBadGateway,
			StatusText: http.StatusText(http.StatusBadGateway),
			Headers:    map[string]string{},
			Body:       "",
			Error:      &errMsg,
		})
		return
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	sess.sendEnvelope(protocol.HTTPResponse{
		Type:       protocol.TypeHTTPResponse,
		RequestID:  req.RequestID,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Headers:    headers,
		Body:       string(bodyBytes),
	})
}

func (sess *session) handleWSConnect(m protocol.WSConnect) {
	u, err := url.Parse(m.URL)
	if err != nil || !portMatches(u, sess.srv.opts.ListenPort) {
		errMsg := "port mismatch"
		sess.sendEnvelope(protocol.WSEvent{
			Type:         protocol.TypeWSEvent,
			ConnectionID: m.ConnectionID,
			EventType:    "error",
			Error:        &errMsg,
		})
		return
	}

	vw := newVirtualWS(sess, m.ConnectionID)
	sess.wsMu.Lock()
	sess.wsConns[m.ConnectionID] = vw
	sess.wsMu.Unlock()
	metrics.TunnelWSConnectionsActive.Inc()

	sess.sendEnvelope(protocol.WSEvent{
		Type:         protocol.TypeWSEvent,
		ConnectionID: m.ConnectionID,
		EventType:    "open",
	})
	sess.srv.wss.fireConnection(vw)
}

func (sess *session) handleWSMessage(m protocol.WSMessage) {
	sess.wsMu.Lock()
	vw := sess.wsConns[m.ConnectionID]
	sess.wsMu.Unlock()
	if vw == nil {
		sess.logger.Debug("ws_message for unknown connection", zap.String("connection_id", m.ConnectionID))
		return
	}
	binary := m.DataType == "arraybuffer"
	data, err := decodeWSPayload(m.Data, binary)
	if err != nil {
		sess.logger.Debug("undecodable ws payload", zap.Error(err))
		return
	}
	vw.deliver(data, binary)
}

func (sess *session) handleWSClose(m protocol.WSClose) {
	sess.wsMu.Lock()
	vw, ok := sess.wsConns[m.ConnectionID]
	if ok {
		delete(sess.wsConns, m.ConnectionID)
	}
	sess.wsMu.Unlock()
	if !ok {
		return
	}
	metrics.TunnelWSConnectionsActive.Dec()
	vw.markClosedLocally()
}

// teardown runs when the control channel read loop exits: every pending
// virtual WebSocket transitions to closed, per spec §5's cancellation
// cascade.
func (sess *session) teardown() {
	sess.wsMu.Lock()
	conns := sess.wsConns
	sess.wsConns = make(map[string]*virtualWS)
	sess.wsMu.Unlock()

	for _, vw := range conns {
		metrics.TunnelWSConnectionsActive.Dec()
		vw.markClosedLocally()
	}
	sess.conn.Close()
}

func portMatches(u *url.URL, listenPort int) bool {
	portStr := u.Port()
	if portStr == "" {
		return false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return false
	}
	return port == listenPort
}

type stringReader string

func (s stringReader) Read(p []byte) (int, error) {
	n := copy(p, s)
	if n < len(s) {
		return n, nil
	}
	return n, io.EOF
}
