package httpapi

import (
	"net/http"
	"strings"
	"time"
)

// wsFrame is one inbound message from the widget. The same shape as the
// /api/message body; replies are flow.Response frames.
type wsFrame struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// handleChatWS serves the conversation over a single websocket. The reply
// to each frame carries the session id, so the client echoes it back on the
// next frame just as it would over plain HTTP.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.metrics.SessionEvents.WithLabelValues("ws_connected").Inc()
	defer s.metrics.SessionEvents.WithLabelValues("ws_disconnected").Inc()

	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	// Greet first so the widget can render without a separate /api/start call.
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(s.router.Start()); err != nil {
		return
	}

	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))

		var resp any
		if strings.TrimSpace(frame.Message) == "restart" {
			resp = s.router.Restart(strings.TrimSpace(frame.SessionID))
		} else {
			resp = s.router.Dispatch(r.Context(), strings.TrimSpace(frame.SessionID), frame.Message)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
