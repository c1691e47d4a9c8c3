package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ErrMaxPeers is returned when the subscriber limit is reached
var ErrMaxPeers = errors.New("max peers reached")

// PeerID uniquely identifies a connected peer
type PeerID uint32

// Peer represents a websocket subscriber
type Peer struct {
	ID     PeerID
	Addr   string
	Format Format

	conn *websocket.Conn

	// Send queue of encoded frames
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

// newPeer creates a peer from an upgraded connection
func newPeer(id PeerID, conn *websocket.Conn, format Format, sendQueueSize int) *Peer {
	return &Peer{
		ID:      id,
		Format:  format,
		conn:    conn,
		sendCh:  make(chan []byte, sendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Send queues an encoded frame for transmission
// Returns false if peer is closed or queue full
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		return false
	}
}

// Close initiates shutdown
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		if p.conn != nil {
			p.conn.Close()
		}
	})
}

// readLoop reads client messages until the connection fails
func (p *Peer) readLoop(cfg *Config, handler func(PeerID, []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(cfg.ReadLimit)
	p.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		handler(p.ID, data)
	}
}

// writeLoop sends queued frames and keepalive pings
func (p *Peer) writeLoop(cfg *Config) {
	defer p.Close()

	ping := time.NewTicker(cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-p.closeCh:
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(p.Format.frameType(), data); err != nil {
				return
			}
		case <-ping.C:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager handles multiple peer connections
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[PeerID]*Peer
	nextID   atomic.Uint32
	maxPeers int
	config   *Config

	// Callbacks
	onConnect    func(*Peer)
	onDisconnect func(PeerID)
	onMessage    func(PeerID, []byte)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:    make(map[PeerID]*Peer),
		maxPeers: cfg.MaxPeers,
		config:   cfg,
	}
}

// SetHandlers configures event callbacks
func (pm *PeerManager) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(PeerID),
	onMessage func(PeerID, []byte),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// Full reports whether the peer limit is reached
func (pm *PeerManager) Full() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers) >= pm.maxPeers
}

// AddConnection registers a new peer from an upgraded connection
func (pm *PeerManager) AddConnection(conn *websocket.Conn, addr string, format Format) (PeerID, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.maxPeers {
		pm.mu.Unlock()
		conn.Close()
		return 0, ErrMaxPeers
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, format, pm.config.SendQueueSize)
	peer.Addr = addr
	pm.peers[id] = peer
	pm.mu.Unlock()

	// onConnect may queue the first frame before the writer starts
	if pm.onConnect != nil {
		pm.onConnect(peer)
	}

	go peer.readLoop(pm.config, pm.handleMessage)
	go peer.writeLoop(pm.config)
	go pm.monitorPeer(peer)

	return id, nil
}

// handleMessage routes received messages
func (pm *PeerManager) handleMessage(id PeerID, data []byte) {
	if pm.onMessage != nil {
		pm.onMessage(id, data)
	}
}

// monitorPeer watches for disconnection
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	_, present := pm.peers[peer.ID]
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if present && pm.onDisconnect != nil {
		pm.onDisconnect(peer.ID)
	}
}

// Broadcast queues a frame on every peer, encoding once per format in use
// Returns delivered and dropped counts; encoding failures count as drops
func (pm *PeerManager) Broadcast(encode func(Format) ([]byte, error)) (sent, dropped int) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	var frames [2][]byte
	var encoded [2]bool
	for _, peer := range pm.peers {
		f := peer.Format
		if !encoded[f] {
			data, err := encode(f)
			if err != nil {
				dropped++
				continue
			}
			frames[f], encoded[f] = data, true
		}
		if peer.Send(frames[f]) {
			sent++
		} else {
			dropped++
		}
	}
	return sent, dropped
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	peers := pm.peers
	pm.peers = make(map[PeerID]*Peer)
	pm.mu.Unlock()

	for _, peer := range peers {
		peer.Close()
	}
}
