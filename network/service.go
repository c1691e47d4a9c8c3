package network

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/engine"
)

// ErrHubClosed is returned once the hub has been shut down
var ErrHubClosed = errors.New("hub closed")

// Hub bridges one race session to websocket subscribers
// It owns the session's frame loop; snapshots are pushed every BroadcastEvery frames
type Hub struct {
	config    *Config
	loop      *engine.FrameLoop
	session   *engine.Session
	peers     *PeerManager
	transport *Transport
	upgrader  websocket.Upgrader
	mux       *http.ServeMux
	logger    *log.Logger

	closed atomic.Bool

	// Cached metric pointers
	statSubscribers *atomic.Int64
	statDropped     *atomic.Int64
	statMessages    *atomic.Int64
	statMalformed   *atomic.Int64
}

// NewHub creates a hub for session; nil cfg selects DefaultConfig
func NewHub(session *engine.Session, cfg *Config, logger *log.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.BroadcastEvery < 1 {
		cfg.BroadcastEvery = 1
	}

	metrics := session.Metrics
	h := &Hub{
		config:    cfg,
		session:   session,
		peers:     NewPeerManager(cfg),
		transport: NewTransport(cfg),
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		statSubscribers: metrics.Ints.Get("network.subscribers"),
		statDropped:     metrics.Ints.Get("network.dropped"),
		statMessages:    metrics.Ints.Get("network.messages"),
		statMalformed:   metrics.Ints.Get("network.malformed"),
	}
	h.loop = engine.NewFrameLoop(session, cfg.FrameInterval, h.onFrame)
	h.peers.SetHandlers(h.onConnect, h.onDisconnect, h.onMessage)

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("/ws", h.handleWS)
	h.mux.HandleFunc("/snapshot", h.handleSnapshot)
	h.mux.HandleFunc("/healthz", h.handleHealth)

	return h
}

// ServeHTTP implements http.Handler
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Loop returns the frame loop driving the session
func (h *Hub) Loop() *engine.FrameLoop {
	return h.loop
}

// Start begins stepping the session
func (h *Hub) Start(ctx context.Context) error {
	if h.closed.Load() {
		return ErrHubClosed
	}
	h.loop.Start(ctx)
	return nil
}

// ListenAndServe starts the frame loop and the HTTP listener, blocking until ctx ends or serving fails
func (h *Hub) ListenAndServe(ctx context.Context) error {
	if err := h.Start(ctx); err != nil {
		return err
	}
	if err := h.transport.Start(h); err != nil {
		h.Close()
		return err
	}
	h.logger.Printf("race %s listening on %s", h.session.ID, h.transport.Addr())

	select {
	case <-ctx.Done():
		h.Close()
		return nil
	case err := <-h.transport.Errors():
		h.Close()
		return err
	}
}

// Close stops the frame loop, disconnects every subscriber and stops the listener
func (h *Hub) Close() {
	if h.closed.Swap(true) {
		return
	}
	h.loop.Stop()
	h.peers.Close()
	h.statSubscribers.Store(0)
	if err := h.transport.Stop(h.config.WriteTimeout); err != nil {
		h.logger.Printf("transport shutdown: %v", err)
	}
}

// PeerCount returns connected subscriber count
func (h *Hub) PeerCount() int {
	return h.peers.PeerCount()
}

// onFrame runs on the loop goroutine and must not block
func (h *Hub) onFrame(snap engine.Snapshot) {
	// Peers render from snapshots; notices only need draining
	for {
		if _, ok := h.session.NextNotice(); !ok {
			break
		}
	}

	if snap.Frame%uint64(h.config.BroadcastEvery) != 0 {
		return
	}
	_, dropped := h.peers.Broadcast(func(f Format) ([]byte, error) {
		return EncodeSnapshot(&snap, f)
	})
	if dropped > 0 {
		h.statDropped.Add(int64(dropped))
	}
}

func (h *Hub) onConnect(p *Peer) {
	h.statSubscribers.Store(int64(h.peers.PeerCount()))
	h.logger.Printf("subscriber %d connected from %s (%s)", p.ID, p.Addr, p.Format)

	// First frame goes out immediately so a new page renders before the next broadcast
	snap := h.loop.Latest()
	data, err := EncodeSnapshot(&snap, p.Format)
	if err != nil {
		h.logger.Printf("subscriber %d: %v", p.ID, err)
		return
	}
	p.Send(data)
}

func (h *Hub) onDisconnect(id PeerID) {
	h.statSubscribers.Store(int64(h.peers.PeerCount()))
	h.logger.Printf("subscriber %d disconnected", id)
}

// onMessage routes client messages into the session's async inputs
func (h *Hub) onMessage(id PeerID, data []byte) {
	h.statMessages.Add(1)

	msg, err := DecodeClientMessage(data)
	if err != nil {
		h.statMalformed.Add(1)
		h.logger.Printf("discarding malformed message from %d: %v", id, err)
		return
	}

	switch msg.Type {
	case MsgInput:
		h.session.SetInput(msg.Up, msg.Down)
	case MsgStart:
		h.session.RequestStart()
	case MsgPowerUp:
		kind, err := components.ParsePowerUpKind(msg.Kind)
		if err != nil {
			h.statMalformed.Add(1)
			h.logger.Printf("discarding power-up from %d: %v", id, err)
			return
		}
		h.session.RequestPowerUp(kind)
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	if h.closed.Load() {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	format := h.config.DefaultFormat
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := ParseFormat(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	if h.peers.Full() {
		http.Error(w, ErrMaxPeers.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	if _, err := h.peers.AddConnection(conn, r.RemoteAddr, format); err != nil {
		h.logger.Printf("rejecting %s: %v", r.RemoteAddr, err)
	}
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.loop.Latest()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&snap); err != nil {
		h.logger.Printf("snapshot response: %v", err)
	}
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.closed.Load() {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
