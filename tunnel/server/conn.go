package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	// The control channel is a single long-lived session per tunnel
	// client; the host app, not this package, decides which origins may
	// open one.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades r to the tunnel's control-channel WebSocket and runs
// a session over it until the connection closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("control channel upgrade failed", zap.Error(err))
		return
	}
	s.HandleConn(r.Context(), conn)
}

// HandleConn runs one tunnel session over an already-established
// WebSocket connection, blocking until the session ends. ctx bounds the
// handshake's quoteFn call; it is not used once the session reaches
// Ready (the session then lives as long as conn does).
func (s *Server) HandleConn(ctx context.Context, conn *websocket.Conn) {
	sess := newSession(s, conn)
	s.trackSession(sess)
	defer s.untrackSession(sess)
	sess.run(ctx)
}
