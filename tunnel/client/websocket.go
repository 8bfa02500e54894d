package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
	"github.com/canvasxyz/teekit-sub002/tunnel/protocol"
)

// ReadyState mirrors the browser WebSocket readyState vocabulary.
type ReadyState int

const (
	Connecting ReadyState = iota
	Open
	Closing
	Closed
)

// WebSocket is a virtual WebSocket tunneled over a Client's control
// channel: everything it does round-trips through the owning Client's
// single encrypted connection rather than opening a socket of its own.
type WebSocket struct {
	client       *Client
	connectionID string

	mu           sync.Mutex
	state        ReadyState
	onMessage    func(data []byte, binary bool)
	onClose      func(code int, reason string)
	onError      func(error)
	pendingReady chan error
}

func newWebSocket(c *Client, id string) *WebSocket {
	return &WebSocket{client: c, connectionID: id, state: Connecting}
}

// Dial opens a virtual WebSocket to url, whose port must equal the
// server's own listen port (spec invariant 10). It blocks until the
// server answers with a ws_event open or error frame.
func (c *Client) Dial(ctx context.Context, url string) (*WebSocket, error) {
	if err := c.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	id := newID()
	ws := newWebSocket(c, id)
	c.wsMu.Lock()
	c.wsConns[id] = ws
	c.wsMu.Unlock()

	ready := make(chan error, 1)
	ws.mu.Lock()
	ws.pendingReady = ready
	ws.mu.Unlock()

	if err := c.sendEnvelope(protocol.WSConnect{
		Type:         protocol.TypeWSConnect,
		ConnectionID: id,
		URL:          url,
	}); err != nil {
		c.wsMu.Lock()
		delete(c.wsConns, id)
		c.wsMu.Unlock()
		return nil, err
	}

	select {
	case err := <-ready:
		if err != nil {
			c.wsMu.Lock()
			delete(c.wsConns, id)
			c.wsMu.Unlock()
			return nil, err
		}
		return ws, nil
	case <-ctx.Done():
		c.wsMu.Lock()
		delete(c.wsConns, id)
		c.wsMu.Unlock()
		return nil, ctx.Err()
	}
}

func (c *Client) handleWSEvent(ev protocol.WSEvent) {
	c.wsMu.Lock()
	ws := c.wsConns[ev.ConnectionID]
	c.wsMu.Unlock()
	if ws == nil {
		return
	}

	switch ev.EventType {
	case "open":
		ws.mu.Lock()
		ws.state = Open
		ready := ws.pendingReady
		ws.pendingReady = nil
		ws.mu.Unlock()
		if ready != nil {
			ready <- nil
		}
	case "error":
		var errMsg string
		if ev.Error != nil {
			errMsg = *ev.Error
		}
		ws.mu.Lock()
		ws.state = Closed
		ready := ws.pendingReady
		ws.pendingReady = nil
		onErr := ws.onError
		ws.mu.Unlock()
		if ready != nil {
			ready <- errs.New(errs.KindChannel, "ws_connect_failed", errMsg)
		} else if onErr != nil {
			onErr(errs.New(errs.KindChannel, "ws_error", errMsg))
		}
		c.wsMu.Lock()
		delete(c.wsConns, ev.ConnectionID)
		c.wsMu.Unlock()
	case "close":
		code := 1000
		if ev.Code != nil {
			code = *ev.Code
		}
		reason := ""
		if ev.Reason != nil {
			reason = *ev.Reason
		}
		c.wsMu.Lock()
		delete(c.wsConns, ev.ConnectionID)
		c.wsMu.Unlock()
		ws.markClosedLocally(code, reason)
	}
}

func (c *Client) handleWSMessage(m protocol.WSMessage) {
	c.wsMu.Lock()
	ws := c.wsConns[m.ConnectionID]
	c.wsMu.Unlock()
	if ws == nil {
		return
	}
	binary := m.DataType == "arraybuffer"
	var data []byte
	if binary {
		decoded, err := base64.StdEncoding.DecodeString(m.Data)
		if err != nil {
			return
		}
		data = decoded
	} else {
		data = []byte(m.Data)
	}

	ws.mu.Lock()
	fn := ws.onMessage
	ws.mu.Unlock()
	if fn != nil {
		fn(data, binary)
	}
}

// ConnectionID is the id this connection was established with.
func (ws *WebSocket) ConnectionID() string { return ws.connectionID }

// ReadyState reports the connection's current lifecycle state.
func (ws *WebSocket) ReadyState() ReadyState {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.state
}

// OnMessage registers the callback invoked for every frame the server
// sends on this connection.
func (ws *WebSocket) OnMessage(fn func(data []byte, binary bool)) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.onMessage = fn
}

// OnClose registers the callback invoked once this connection closes,
// whether by explicit Close, a server-sent ws_event close, or channel
// cancellation.
func (ws *WebSocket) OnClose(fn func(code int, reason string)) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.onClose = fn
}

// OnError registers the callback invoked on a ws_event error frame after
// the connection is already open.
func (ws *WebSocket) OnError(fn func(error)) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.onError = fn
}

// Send transmits one frame to the server side of this virtual connection.
// payload must be a []byte or a string, per spec's single self-describing
// send(bytes_or_text) argument; a []byte payload is classified binary or
// text by classifyPayload, a string payload is always sent as text.
func (ws *WebSocket) Send(payload any) error {
	ws.mu.Lock()
	state := ws.state
	ws.mu.Unlock()
	if state != Open {
		return errs.New(errs.KindChannel, "not_open", ws.connectionID)
	}

	data, binary, err := normalizeSendPayload(payload)
	if err != nil {
		return err
	}

	encoded, dataType := encodeWSPayload(data, binary)
	return ws.client.sendEnvelope(protocol.WSMessage{
		Type:         protocol.TypeWSMessage,
		ConnectionID: ws.connectionID,
		Data:         encoded,
		DataType:     dataType,
	})
}

// normalizeSendPayload accepts the two shapes spec's send(bytes_or_text)
// allows: []byte, classified binary-or-text by classifyPayload's 1024-byte
// heuristic, or string, always sent as text.
func normalizeSendPayload(payload any) (data []byte, binary bool, err error) {
	switch v := payload.(type) {
	case []byte:
		return v, classifyPayload(v), nil
	case string:
		return []byte(v), false, nil
	default:
		return nil, false, errs.New(errs.KindChannel, "invalid_payload_type", fmt.Sprintf("%T", payload))
	}
}

// binaryDetectPrefix is how many leading bytes of a payload the
// classification heuristic inspects.
const binaryDetectPrefix = 1024

// classifyPayload reports whether data should be treated as binary: the
// presence of a NUL byte or any byte in 0x80..0x9F within the first 1024
// bytes, per SPEC_FULL §4.6.
func classifyPayload(data []byte) bool {
	n := len(data)
	if n > binaryDetectPrefix {
		n = binaryDetectPrefix
	}
	for _, b := range data[:n] {
		if b == 0x00 || (b >= 0x80 && b <= 0x9F) {
			return true
		}
	}
	return false
}

// Close tears down the virtual connection from the client side.
func (ws *WebSocket) Close(code int, reason string) error {
	ws.mu.Lock()
	if ws.state == Closed {
		ws.mu.Unlock()
		return nil
	}
	ws.state = Closing
	ws.mu.Unlock()

	ws.client.wsMu.Lock()
	delete(ws.client.wsConns, ws.connectionID)
	ws.client.wsMu.Unlock()

	err := ws.client.sendEnvelope(protocol.WSClose{
		Type:         protocol.TypeWSClose,
		ConnectionID: ws.connectionID,
		Code:         &code,
		Reason:       &reason,
	})
	ws.markClosedLocally(code, reason)
	return err
}

func (ws *WebSocket) markClosedLocally(code int, reason string) {
	ws.mu.Lock()
	if ws.state == Closed {
		ws.mu.Unlock()
		return
	}
	ws.state = Closed
	onClose := ws.onClose
	ws.mu.Unlock()
	if onClose != nil {
		onClose(code, reason)
	}
}

func encodeWSPayload(data []byte, binary bool) (payload string, dataType string) {
	if binary {
		return base64.StdEncoding.EncodeToString(data), "arraybuffer"
	}
	return string(data), "string"
}
