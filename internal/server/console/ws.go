package console

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSHandler serves console sessions over websocket. Every text message is
// one command line; every reply line is one text message.
func (c *Console) WSHandler(spawnX, spawnY, spawnZ int) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		s := NewSession("ws-"+r.RemoteAddr, spawnX, spawnY, spawnZ, &wsWriter{conn: conn})
		c.Log.Info("console session opened", "session", s.Name)
		defer c.Log.Info("console session closed", "session", s.Name)

		for {
			_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
			typ, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if typ != websocket.TextMessage {
				continue
			}
			for _, line := range strings.Split(string(msg), "\n") {
				c.Exec(s, line)
			}
		}
	}
}

// wsWriter turns each Write into one text message, without the trailing newline.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := w.conn.WriteMessage(websocket.TextMessage, []byte(strings.TrimSuffix(string(p), "\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
