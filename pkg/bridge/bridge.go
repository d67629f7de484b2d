package bridge

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/uihooks/pkg/dom"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

// Config configures a Bridge.
type Config struct {
	// ReadTimeout closes a connection that sends nothing for this long
	// (default: 60s).
	ReadTimeout time.Duration

	// ReadLimit is the largest accepted message in bytes (default: 64KB).
	ReadLimit int64

	// WriteTimeout bounds each Broadcast write (default: 10s).
	WriteTimeout time.Duration

	// CheckOrigin validates the Origin header of upgrade requests.
	// Default: same-origin only (gorilla's default check).
	CheckOrigin func(r *http.Request) bool

	// Logger receives connection and decode errors.
	// Default: the loop's logger.
	Logger *slog.Logger

	// Greeting returns the messages sent to each client right after it
	// connects, typically the current state of the page.
	Greeting func() []Message
}

// Option configures a Bridge.
type Option func(*Config)

// WithReadTimeout sets the per-connection idle timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = d
	}
}

// WithReadLimit sets the maximum message size.
func WithReadLimit(n int64) Option {
	return func(c *Config) {
		c.ReadLimit = n
	}
}

// WithWriteTimeout sets the Broadcast write deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = d
	}
}

// WithCheckOrigin sets the upgrade origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// WithLogger sets the bridge logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithGreeting sets the messages sent to each new client.
func WithGreeting(fn func() []Message) Option {
	return func(c *Config) {
		c.Greeting = fn
	}
}

func defaultConfig() Config {
	return Config{
		ReadTimeout:  60 * time.Second,
		ReadLimit:    64 * 1024,
		WriteTimeout: 10 * time.Second,
	}
}

// Bridge accepts WebSocket clients and replays their events into a window.
type Bridge struct {
	loop     *reactive.Loop
	win      *dom.Window
	config   Config
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

type client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// New creates a bridge that dispatches into win on loop.
func New(loop *reactive.Loop, win *dom.Window, opts ...Option) *Bridge {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = loop.Logger()
	}

	return &Bridge{
		loop:   loop,
		win:    win,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:  logger.With("component", "bridge"),
		clients: make(map[string]*client),
	}
}

// Routes returns the bridge's HTTP routes: GET /ws upgrades to a
// WebSocket.
func (b *Bridge) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", b.HandleWebSocket)
	return r
}

// HandleWebSocket upgrades the request and reads events until the client
// disconnects or goes idle.
func (b *Bridge) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	b.mu.Lock()
	b.clients[c.id] = c
	b.mu.Unlock()

	logger := b.logger.With("conn", c.id)
	logger.Info("client connected", "remote", r.RemoteAddr)

	defer func() {
		b.mu.Lock()
		delete(b.clients, c.id)
		b.mu.Unlock()
		conn.Close()
		logger.Info("client disconnected")
	}()

	if b.config.Greeting != nil {
		for _, msg := range b.config.Greeting() {
			if err := b.send(c, msg); err != nil {
				logger.Warn("greeting failed", "error", err)
				return
			}
		}
	}

	b.readLoop(c, logger)
}

func (b *Bridge) readLoop(c *client, logger *slog.Logger) {
	c.conn.SetReadLimit(b.config.ReadLimit)

	for {
		c.conn.SetReadDeadline(time.Now().Add(b.config.ReadTimeout))

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				logger.Error("read error", "error", err)
			}
			return
		}

		msg, err := Decode(data)
		if err != nil {
			logger.Warn("message skipped", "error", err)
			continue
		}
		if err := b.Deliver(msg); err != nil {
			logger.Warn("event dropped", "type", msg.Type, "error", err)
		}
	}
}

// Deliver dispatches msg as an event on the loop. It returns the loop's
// error when the event could not be queued.
func (b *Bridge) Deliver(msg Message) error {
	return b.loop.Dispatch(func() {
		e := dom.NewEvent(msg.Type)
		e.Data = msg.Data

		if msg.Target == WindowTarget {
			b.win.DispatchEvent(e)
			return
		}

		doc := b.win.Document()
		node := doc.FindByID(msg.Target)
		if node == nil {
			node = doc
		}
		node.DispatchEvent(e)
	})
}

// Broadcast sends msg to every connected client. Clients whose write fails
// are disconnected.
func (b *Bridge) Broadcast(msg Message) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}

	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		if err := b.write(c, data); err != nil {
			b.logger.Warn("broadcast failed", "conn", c.id, "error", err)
			c.conn.Close()
		}
	}
	return nil
}

func (b *Bridge) send(c *client, msg Message) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}
	return b.write(c, data)
}

func (b *Bridge) write(c *client, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// ClientCount returns the number of connected clients.
func (b *Bridge) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close disconnects every client.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, c := range b.clients {
		c.conn.Close()
		delete(b.clients, id)
	}
}
