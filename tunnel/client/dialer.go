package client

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketDialer builds a Dialer that opens a real gorilla/websocket
// connection to url on every Dial call, the Go-native way to satisfy "the
// tunnel rides over a caller-supplied ... *websocket.Conn."
func WebSocketDialer(url string, header http.Header) Dialer {
	return &wsDialer{url: url, header: header}
}

type wsDialer struct {
	url    string
	header http.Header
}

func (d *wsDialer) Dial(ctx context.Context) (wireConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, d.url, d.header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
