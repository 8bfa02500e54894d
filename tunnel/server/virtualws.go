package server

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
	"github.com/canvasxyz/teekit-sub002/internal/metrics"
	"github.com/canvasxyz/teekit-sub002/tunnel/protocol"
)

// virtualWS is the session-owned implementation of VirtualWS: frames sent
// through it are sealed into the owning session's envelope and written
// back over the one real control-channel connection.
type virtualWS struct {
	sess *session
	id   string

	mu      sync.Mutex
	onMsgFn func(data []byte, binary bool)
	closed  bool
}

func newVirtualWS(sess *session, id string) *virtualWS {
	return &virtualWS{sess: sess, id: id}
}

func (vw *virtualWS) ConnectionID() string { return vw.id }

func (vw *virtualWS) OnMessage(fn func(data []byte, binary bool)) {
	vw.mu.Lock()
	defer vw.mu.Unlock()
	vw.onMsgFn = fn
}

func (vw *virtualWS) deliver(data []byte, binary bool) {
	vw.mu.Lock()
	fn := vw.onMsgFn
	vw.mu.Unlock()
	if fn != nil {
		fn(data, binary)
	}
}

// Send transmits one frame to the tunnel client. payload must be a
// []byte or a string, per spec's single self-describing send(bytes_or_text)
// argument; a []byte payload is classified binary or text by
// classifyPayload, a string payload is always sent as text.
func (vw *virtualWS) Send(payload any) error {
	vw.mu.Lock()
	closed := vw.closed
	vw.mu.Unlock()
	if closed {
		return errs.New(errs.KindChannel, "connection_closed", vw.id)
	}

	data, binary, err := normalizeSendPayload(payload)
	if err != nil {
		return err
	}

	encoded, dataType := encodeWSPayload(data, binary)
	vw.sess.sendEnvelope(protocol.WSMessage{
		Type:         protocol.TypeWSMessage,
		ConnectionID: vw.id,
		Data:         encoded,
		DataType:     dataType,
	})
	return nil
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

func (vw *virtualWS) Close(code int, reason string) error {
	vw.mu.Lock()
	if vw.closed {
		vw.mu.Unlock()
		return nil
	}
	vw.closed = true
	vw.mu.Unlock()

	vw.sess.wsMu.Lock()
	_, tracked := vw.sess.wsConns[vw.id]
	delete(vw.sess.wsConns, vw.id)
	vw.sess.wsMu.Unlock()
	if tracked {
		metrics.TunnelWSConnectionsActive.Dec()
	}

	vw.sess.sendEnvelope(protocol.WSEvent{
		Type:         protocol.TypeWSEvent,
		ConnectionID: vw.id,
		EventType:    "close",
		Code:         &code,
		Reason:       &reason,
	})
	return nil
}

// markClosedLocally marks the connection closed without sending a wire
// frame, for teardown paths where the control channel is already gone.
func (vw *virtualWS) markClosedLocally() {
	vw.mu.Lock()
	vw.closed = true
	vw.mu.Unlock()
}

// encodeWSPayload wire-encodes an application payload per SPEC_FULL §4.6:
// binary frames are base64 with data_type "arraybuffer", text frames pass
// through verbatim with data_type "string".
func encodeWSPayload(data []byte, binary bool) (payload string, dataType string) {
	if binary {
		return base64.StdEncoding.EncodeToString(data), "arraybuffer"
	}
	return string(data), "string"
}

// decodeWSPayload reverses encodeWSPayload.
func decodeWSPayload(data string, binary bool) ([]byte, error) {
	if binary {
		b, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, errs.Wrap(errs.KindChannel, "malformed_base64", err)
		}
		return b, nil
	}
	return []byte(data), nil
}
