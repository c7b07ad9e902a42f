package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// PeerID uniquely identifies a connected peer
type PeerID uint32

// ErrMaxPeers rejects a connection beyond Config.MaxPeers
var ErrMaxPeers = errors.New("max peers reached")

// Peer represents a remote websocket endpoint
type Peer struct {
	ID       PeerID
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn   *websocket.Conn
	config *Config

	// Send queue, full queue drops frames
	sendCh  chan []byte
	dropped atomic.Uint64

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

// newPeer wraps an upgraded connection
func newPeer(id PeerID, conn *websocket.Conn, cfg *Config) *Peer {
	p := &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues an encoded message for transmission
// Returns false if the peer is closed or its queue is full
func (p *Peer) Send(data []byte) bool {
	if p.Closed() {
		return false
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// Closed reports whether Close has run
func (p *Peer) Closed() bool {
	select {
	case <-p.closeCh:
		return true
	default:
		return false
	}
}

// Dropped returns messages discarded by a full send queue
func (p *Peer) Dropped() uint64 { return p.dropped.Load() }

// Close initiates shutdown, safe to call repeatedly
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// readLoop reads messages from the connection until it fails
func (p *Peer) readLoop(handler func(*Peer, []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(p.config.MaxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	})

	for {
		kind, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))

		if kind != websocket.TextMessage {
			continue
		}
		handler(p, data)
	}
}

// writeLoop sends queued messages and heartbeats
func (p *Peer) writeLoop() {
	defer p.Close()

	heartbeat := time.NewTicker(p.config.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-p.closeCh:
			p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(p.config.WriteTimeout))
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(p.config.WriteTimeout)); err != nil {
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
	onDisconnect func(*Peer)
	onMessage    func(*Peer, []byte)
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
	onDisconnect func(*Peer),
	onMessage func(*Peer, []byte),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers a new peer and starts its I/O loops
func (pm *PeerManager) AddConnection(conn *websocket.Conn) (*Peer, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.maxPeers {
		pm.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ErrMaxPeers.Error()),
			time.Now().Add(pm.config.WriteTimeout))
		conn.Close()
		return nil, ErrMaxPeers
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, pm.config)
	pm.peers[id] = peer
	pm.mu.Unlock()

	if pm.onConnect != nil {
		pm.onConnect(peer)
	}

	go peer.readLoop(pm.handleMessage)
	go peer.writeLoop()
	go pm.monitorPeer(peer)

	return peer, nil
}

// handleMessage routes received messages
func (pm *PeerManager) handleMessage(p *Peer, data []byte) {
	if pm.onMessage != nil {
		pm.onMessage(p, data)
	}
}

// monitorPeer watches for disconnection
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if pm.onDisconnect != nil {
		pm.onDisconnect(peer)
	}
}

// Send transmits data to a specific peer
func (pm *PeerManager) Send(id PeerID, data []byte) bool {
	pm.mu.RLock()
	peer, ok := pm.peers[id]
	pm.mu.RUnlock()

	if !ok {
		return false
	}
	return peer.Send(data)
}

// Broadcast sends data to all connected peers, returns how many accepted it
func (pm *PeerManager) Broadcast(data []byte) int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	sent := 0
	for _, peer := range pm.peers {
		if peer.Send(data) {
			sent++
		}
	}
	return sent
}

// GetPeer retrieves a peer by ID
func (pm *PeerManager) GetPeer(id PeerID) (*Peer, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.peers[id]
	return p, ok
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
	peers := make([]*Peer, 0, len(pm.peers))
	for _, peer := range pm.peers {
		peers = append(peers, peer)
	}
	pm.mu.Unlock()

	for _, peer := range peers {
		peer.Close()
	}
}
