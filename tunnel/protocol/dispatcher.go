package protocol

import (
	"github.com/canvasxyz/teekit-sub002/internal/errs"
)

// Handler processes one decoded Message.
type Handler func(Message) error

// Dispatcher routes decoded wire messages by type to a registered
// Handler, replacing the teacher-adjacent pattern (seen across the
// retrieval pack's WebSocket-heavy servers) of prototype-patching a
// transport's emit function to intercept frames: the transport hands
// every frame straight to a Dispatcher owned by the session, which routes
// by type instead.
type Dispatcher struct {
	handlers map[MessageType]Handler
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[MessageType]Handler)}
}

// On registers handler for msgType, replacing any previous registration.
func (d *Dispatcher) On(msgType MessageType, handler Handler) {
	d.handlers[msgType] = handler
}

// Dispatch routes msg to its registered handler. A message with no
// registered handler is not an error — callers that only care about a
// subset of the union simply don't register the rest.
func (d *Dispatcher) Dispatch(msg Message) error {
	h, ok := d.handlers[Kind(msg)]
	if !ok {
		return nil
	}
	return h(msg)
}

// DecodeAndDispatch decodes raw and routes it in one step.
func (d *Dispatcher) DecodeAndDispatch(raw []byte) error {
	msg, err := DecodeMessage(raw)
	if err != nil {
		return errs.Wrap(errs.KindChannel, "decode_failed", err)
	}
	return d.Dispatch(msg)
}
