package tracking

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world"
)

const (
	readLimit    = 64 * 1024
	pongWait     = 10 * time.Second
	pingInterval = 4 * time.Second
)

// Frame — кадр трекера в формате websocket.
// Normalized: координаты в [0, 1] и масштабируются на размер мира.
type Frame struct {
	Blobs      []world.Blob `json:"blobs"`
	Normalized bool         `json:"normalized"`
}

// WSHandler принимает кадры трекера по websocket и пишет их в Feed
type WSHandler struct {
	feed     *Feed
	width    float64
	height   float64
	upgrader websocket.Upgrader
	clients  int32
	log      *logging.Logger
}

// NewWSHandler создаёт обработчик для мира размером width×height
func NewWSHandler(feed *Feed, width, height float64) *WSHandler {
	return &WSHandler{
		feed:   feed,
		width:  width,
		height: height,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logging.GetTrackingLogger(),
	}
}

// Clients возвращает число подключённых трекеров
func (h *WSHandler) Clients() int {
	return int(atomic.LoadInt32(&h.clients))
}

// ServeHTTP обрабатывает одно websocket-соединение трекера
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("⚠️ Websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	atomic.AddInt32(&h.clients, 1)
	defer atomic.AddInt32(&h.clients, -1)
	h.log.Info("📡 Трекер подключён: %s", r.RemoteAddr)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.pingLoop(conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("⚠️ Трекер %s: %v", r.RemoteAddr, err)
			}
			h.log.Info("📴 Трекер отключён: %s", r.RemoteAddr)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		blobs, err := h.decode(data)
		if err != nil {
			h.log.Debug("Некорректный кадр от %s: %v", r.RemoteAddr, err)
			continue
		}
		h.feed.Set(blobs)
	}
}

// pingLoop держит соединение живым; запись ping разрешена параллельно чтению
func (h *WSHandler) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// decode разбирает кадр и переводит координаты в мировые
func (h *WSHandler) decode(data []byte) ([]world.Blob, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Normalized {
		for i, b := range f.Blobs {
			p := vec.Vec2Float{X: b.X, Y: b.Y}.Scale(h.width, h.height)
			f.Blobs[i].X, f.Blobs[i].Y = p.X, p.Y
		}
	}
	return f.Blobs, nil
}
