// Package protocol implements the Tunnel Protocol State Machine: the wire
// message tagged union, encrypted envelope sealing/opening, the
// handshake's sealed-box construction, session state transitions, and
// reconnect backoff. It has no knowledge of net/http or gorilla/websocket;
// tunnel/server and tunnel/client drive an actual transport and plug its
// frames through here.
package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
)

// MessageType is the wire-level "type" discriminator shared by every
// message this protocol understands.
type MessageType string

const (
	TypeServerKX     MessageType = "server_kx"
	TypeClientKX     MessageType = "client_kx"
	TypeHTTPRequest  MessageType = "http_request"
	TypeHTTPResponse MessageType = "http_response"
	TypeWSConnect    MessageType = "ws_connect"
	TypeWSMessage    MessageType = "ws_message"
	TypeWSClose      MessageType = "ws_close"
	TypeWSEvent      MessageType = "ws_event"
	TypeEnc          MessageType = "enc"
)

// Message is the tagged union every decoded wire frame satisfies. Callers
// type-switch on the concrete type exactly as the teacher's quote codec
// type-switches on CertificationData.Data.
type Message interface {
	messageType() MessageType
}

// ServerKX is the server's plaintext handshake announcement: its X25519
// public key and a quote whose report_data binds that key.
type ServerKX struct {
	Type             MessageType `json:"type"`
	X25519PublicKey  []byte      `json:"x25519_public_key"`
	Quote            []byte      `json:"quote"`
}

func (ServerKX) messageType() MessageType { return TypeServerKX }

// ClientKX is the client's plaintext handshake reply: a symmetric key
// sealed to the server's X25519 public key via an anonymous sealed box.
type ClientKX struct {
	Type               MessageType `json:"type"`
	SealedSymmetricKey []byte      `json:"sealed_symmetric_key"`
}

func (ClientKX) messageType() MessageType { return TypeClientKX }

// HTTPRequest frames an outbound fetch over the encrypted channel.
type HTTPRequest struct {
	Type      MessageType       `json:"type"`
	RequestID string            `json:"request_id"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      *string           `json:"body,omitempty"`
}

func (HTTPRequest) messageType() MessageType { return TypeHTTPRequest }

// HTTPResponse answers an HTTPRequest by request_id.
type HTTPResponse struct {
	Type       MessageType       `json:"type"`
	RequestID  string            `json:"request_id"`
	Status     int               `json:"status"`
	StatusText string            `json:"status_text"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	Error      *string           `json:"error,omitempty"`
}

func (HTTPResponse) messageType() MessageType { return TypeHTTPResponse }

// WSConnect asks the server to open a virtual WebSocket to url, whose
// port must match the server's own listen port.
type WSConnect struct {
	Type         MessageType `json:"type"`
	ConnectionID string      `json:"connection_id"`
	URL          string      `json:"url"`
}

func (WSConnect) messageType() MessageType { return TypeWSConnect }

// WSMessage carries one application-level WS frame in either direction.
type WSMessage struct {
	Type         MessageType `json:"type"`
	ConnectionID string      `json:"connection_id"`
	Data         string      `json:"data"`
	DataType     string      `json:"data_type"` // "string" | "arraybuffer"
}

func (WSMessage) messageType() MessageType { return TypeWSMessage }

// WSClose tears down a virtual WebSocket.
type WSClose struct {
	Type         MessageType `json:"type"`
	ConnectionID string      `json:"connection_id"`
	Code         *int        `json:"code,omitempty"`
	Reason       *string     `json:"reason,omitempty"`
}

func (WSClose) messageType() MessageType { return TypeWSClose }

// WSEvent reports a virtual WebSocket lifecycle event back to the client.
type WSEvent struct {
	Type         MessageType `json:"type"`
	ConnectionID string      `json:"connection_id"`
	EventType    string      `json:"event_type"` // "open" | "close" | "error"
	Code         *int        `json:"code,omitempty"`
	Reason       *string     `json:"reason,omitempty"`
	Error        *string     `json:"error,omitempty"`
}

func (WSEvent) messageType() MessageType { return TypeWSEvent }

// Envelope is the encrypted carrier for every sub-message once a session
// reaches Ready: plaintext is secretbox-sealed under the session's
// symmetric key with an independently random nonce per envelope.
type Envelope struct {
	Type       MessageType `json:"type"`
	Nonce      []byte      `json:"nonce"`
	Ciphertext []byte      `json:"ciphertext"`
}

func (Envelope) messageType() MessageType { return TypeEnc }

type typeHeader struct {
	Type MessageType `json:"type"`
}

// DecodeMessage decodes a single JSON wire frame into its concrete
// Message type, generalizing the teacher's "decode the tag, then decode
// the payload" idiom from certification data to the protocol's full
// message union.
func DecodeMessage(raw []byte) (Message, error) {
	var hdr typeHeader
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return nil, errs.Wrap(errs.KindChannel, "malformed_json", err)
	}

	var err error
	var msg Message
	switch hdr.Type {
	case TypeServerKX:
		var m ServerKX
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeClientKX:
		var m ClientKX
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeHTTPRequest:
		var m HTTPRequest
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeHTTPResponse:
		var m HTTPResponse
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeWSConnect:
		var m WSConnect
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeWSMessage:
		var m WSMessage
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeWSClose:
		var m WSClose
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeWSEvent:
		var m WSEvent
		err = json.Unmarshal(raw, &m)
		msg = m
	case TypeEnc:
		var m Envelope
		err = json.Unmarshal(raw, &m)
		msg = m
	default:
		return nil, errs.New(errs.KindChannel, "unknown_message_type", string(hdr.Type))
	}
	if err != nil {
		return nil, errors.Wrap(err, "protocol: decode "+string(hdr.Type))
	}
	return msg, nil
}

// Encode marshals any Message back to its wire JSON form.
func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Kind returns msg's wire type discriminator. Exported so callers outside
// this package (tunnel/server, tunnel/client) can inspect a decoded
// Message's type without a full type switch.
func Kind(msg Message) MessageType {
	return msg.messageType()
}
