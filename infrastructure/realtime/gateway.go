package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"support-chat/contract"
	"support-chat/sink"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// maxFrameBytes matches the HTTP body cap so an image accepted by
	// POST /send is accepted over the socket too.
	maxFrameBytes = 10 << 20
)

type Options struct {
	BufferSize      int
	WriteTimeout    time.Duration
	DeliveryTimeout time.Duration
	AllowedOrigins  []string
}

// Gateway upgrades GET /socket and bridges each socket to the relay.
type Gateway struct {
	relay    contract.IRelay
	options  Options
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	clients map[string]*client
}

func NewGateway(relay contract.IRelay, options Options, log *slog.Logger) *Gateway {
	g := &Gateway{
		relay:   relay,
		options: options,
		log:     log,
		clients: make(map[string]*client),
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     g.checkOrigin,
	}
	return g
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client.
		g.log.Warn("WebSocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	// The socket outlives the upgrade request.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	c := &client{
		id:      uuid.NewString(),
		conn:    conn,
		sink:    sink.NewConnectionSink(g.options.BufferSize),
		gateway: g,
		cancel:  cancel,
		log:     g.log,
	}
	g.track(c)
	g.log.Info("Socket connected", "connection_id", c.id, "remote_addr", r.RemoteAddr)

	go c.writePump()
	go c.readPump(ctx)
}

// Shutdown closes every open socket. Each read pump then runs its usual
// disconnect path.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	clients := lo.Values(g.clients)
	g.mu.Unlock()

	for _, c := range clients {
		c.closeWith(websocket.CloseGoingAway, "server shutting down")
	}
	g.log.Info("Gateway closed", "sockets", len(clients))
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || lo.Contains(g.options.AllowedOrigins, "*") {
		return true
	}
	allowed := lo.Contains(g.options.AllowedOrigins, origin)
	if !allowed {
		g.log.Warn("Rejected socket origin", "origin", origin)
	}
	return allowed
}

func (g *Gateway) track(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[c.id] = c
}

func (g *Gateway) untrack(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, id)
}
