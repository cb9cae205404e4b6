package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"betsense/internal/logger"
)

// Event is one message on the stream.
type Event struct {
	Type    string    `json:"type"`
	Seq     uint64    `json:"seq"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

type Options struct {
	// Buffer is the per-client queue length. A client whose queue is full
	// misses the event.
	Buffer            int
	HeartbeatInterval time.Duration
	PingTimeout       time.Duration
	WriteTimeout      time.Duration
	OriginPatterns    []string
	Logger            *zap.Logger
}

// Hub broadcasts events to websocket subscribers.
type Hub struct {
	opts    Options
	log     *zap.Logger
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	seq     uint64
	dropped atomic.Uint64
	now     func() time.Time
}

func NewHub(opts Options) *Hub {
	if opts.Buffer <= 0 {
		opts.Buffer = 64
	}
	if opts.HeartbeatInterval == 0 {
		opts.HeartbeatInterval = 20 * time.Second
	}
	if opts.PingTimeout == 0 {
		opts.PingTimeout = 5 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	return &Hub{
		opts:    opts,
		log:     logger.OrNop(opts.Logger),
		clients: map[chan []byte]struct{}{},
		now:     time.Now,
	}
}

// Publish never blocks.
func (h *Hub) Publish(eventType string, payload any) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	data, err := json.Marshal(Event{Type: eventType, Seq: h.seq, At: h.now().UTC(), Payload: payload})
	if err != nil {
		h.log.Warn("stream marshal failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribe registers a queue. The returned func removes it.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, h.opts.Buffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients, ch)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// ServeHTTP upgrades the request and streams events until the client goes
// away or the request context ends.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, h.acceptOptions())
	if err != nil {
		h.log.Warn("stream accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	events, unsubscribe := h.Subscribe()
	defer unsubscribe()

	// Clients only listen; CloseRead handles control frames and cancels ctx
	// when the peer closes.
	ctx := conn.CloseRead(r.Context())
	h.log.Debug("stream client connected", zap.String("remote", r.RemoteAddr))

	err = h.pump(ctx, conn, events)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		_ = conn.Close(websocket.StatusNormalClosure, "")
	case websocket.CloseStatus(err) != -1:
	default:
		h.log.Debug("stream client dropped", zap.String("remote", r.RemoteAddr), zap.Error(err))
		_ = conn.Close(websocket.StatusInternalError, "write failed")
	}
}

// acceptOptions treats a "*" origin pattern as "any origin".
func (h *Hub) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{}
	for _, p := range h.opts.OriginPatterns {
		if p == "*" {
			opts.InsecureSkipVerify = true
			return opts
		}
		opts.OriginPatterns = append(opts.OriginPatterns, p)
	}
	return opts
}

func (h *Hub) pump(ctx context.Context, conn *websocket.Conn, events <-chan []byte) error {
	ticker := time.NewTicker(h.opts.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-events:
			wctx, cancel := context.WithTimeout(ctx, h.opts.WriteTimeout)
			err := conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return err
			}
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, h.opts.PingTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}
