package network

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/engine"
	"github.com/elgoog577215-beep/skyfall/input"
	"github.com/elgoog577215-beep/skyfall/system"
)

// Poster queues commands for the simulation goroutine, satisfied by *engine.Loop
type Poster interface {
	Post(cmd engine.Command) bool
}

// Service exposes the simulation over websocket
// Peers receive snapshot frames and send input; every request becomes an engine.Command
// so the simulation keeps a single writer
type Service struct {
	config    *Config
	poster    Poster
	peers     *PeerManager
	transport *Transport
	upgrader  websocket.Upgrader
	logger    zerolog.Logger

	// Loop goroutine only
	ticks  uint64
	snap   engine.Snapshot
	holds  map[*Peer]map[input.Code]struct{}
	counts map[input.Code]int // Peers holding each code

	framesSent atomic.Uint64
	malformed  atomic.Uint64
}

// NewService creates a network service posting to poster, nil cfg uses DefaultConfig
func NewService(cfg *Config, poster Poster, logger zerolog.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.FrameEvery <= 0 {
		cfg.FrameEvery = 1
	}
	s := &Service{
		config: cfg,
		poster: poster,
		peers:  NewPeerManager(cfg),
		holds:  make(map[*Peer]map[input.Code]struct{}),
		counts: make(map[input.Code]int),
		logger: logger.With().Str("component", "network").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.peers.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	s.transport = NewTransport(cfg, s.Handler())
	return s
}

// Name returns the service name used in logs
func (s *Service) Name() string {
	return "network"
}

// Handler returns the HTTP routes: /ws upgrades, /healthz reports liveness
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// HandleWS upgrades the request and registers the peer
func (s *Service) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}
	if _, err := s.peers.AddConnection(conn); err != nil {
		s.logger.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("connection rejected")
	}
}

// Start binds Config.Address and serves in the background
func (s *Service) Start() error {
	if err := s.transport.Start(); err != nil {
		return err
	}
	s.logger.Info().Str("addr", s.transport.Addr().String()).Msg("listening")
	return nil
}

// Stop disconnects every peer and shuts the server down
func (s *Service) Stop() error {
	s.peers.Close()
	return s.transport.Stop()
}

// Addr returns the bound address, nil before Start
func (s *Service) Addr() net.Addr { return s.transport.Addr() }

// IsRunning returns true if the server is active
func (s *Service) IsRunning() bool { return s.transport.IsRunning() }

// PeerCount returns connected peer count
func (s *Service) PeerCount() int { return s.peers.PeerCount() }

// FramesSent returns frames accepted by peer queues
func (s *Service) FramesSent() uint64 { return s.framesSent.Load() }

// Malformed returns client messages that failed to decode
func (s *Service) Malformed() uint64 { return s.malformed.Load() }

// PublishFrame marshals the snapshot once and fans it out, registered with Loop.OnFrame
func (s *Service) PublishFrame(sim *engine.Simulation) {
	s.releaseClosed(sim)

	s.ticks++
	if s.ticks%uint64(s.config.FrameEvery) != 0 || s.peers.PeerCount() == 0 {
		return
	}

	sim.Snapshot(&s.snap)
	data, err := json.Marshal(FrameMessage{Type: MsgFrame, Snapshot: &s.snap})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal frame")
		return
	}
	s.framesSent.Add(uint64(s.peers.Broadcast(data)))
}

func (s *Service) onConnect(p *Peer) {
	s.logger.Info().Uint32("peer", uint32(p.ID)).Str("remote", p.Addr).Msg("peer connected")
	s.post(p, func(sim *engine.Simulation) {
		s.reply(p, BindingsMessage{Type: MsgWelcome, Peer: p.ID, Bindings: wireBindings(sim.Bindings())})
	})
}

func (s *Service) onDisconnect(p *Peer) {
	s.logger.Info().
		Uint32("peer", uint32(p.ID)).
		Uint64("dropped", p.Dropped()).
		Msg("peer disconnected")
	if !s.poster.Post(func(sim *engine.Simulation) { s.releasePeer(sim, p) }) {
		s.logger.Warn().Uint32("peer", uint32(p.ID)).Msg("release deferred to next frame")
	}
}

// The hold methods run on the loop goroutine. A code stays pressed in the simulation
// while any peer holds it; a peer that has closed can no longer add holds

func (s *Service) press(sim *engine.Simulation, p *Peer, code input.Code) {
	if p.Closed() {
		return
	}
	held := s.holds[p]
	if held == nil {
		held = make(map[input.Code]struct{})
		s.holds[p] = held
	}
	if _, ok := held[code]; ok {
		return
	}
	held[code] = struct{}{}
	s.counts[code]++
	if s.counts[code] == 1 {
		sim.Press(code)
	}
}

func (s *Service) release(sim *engine.Simulation, p *Peer, code input.Code) {
	held := s.holds[p]
	if _, ok := held[code]; !ok {
		return
	}
	delete(held, code)
	s.drop(sim, code)
}

func (s *Service) drop(sim *engine.Simulation, code input.Code) {
	s.counts[code]--
	if s.counts[code] <= 0 {
		delete(s.counts, code)
		sim.Release(code)
	}
}

// releasePeer drops every hold of p
func (s *Service) releasePeer(sim *engine.Simulation, p *Peer) {
	held, ok := s.holds[p]
	if !ok {
		return
	}
	delete(s.holds, p)
	for code := range held {
		s.drop(sim, code)
	}
	if len(held) > 0 {
		s.logger.Debug().Uint32("peer", uint32(p.ID)).Int("held", len(held)).Msg("released peer holds")
	}
}

// releaseClosed covers disconnects whose release command was dropped by a full inbox
func (s *Service) releaseClosed(sim *engine.Simulation) {
	for p := range s.holds {
		if p.Closed() {
			s.releasePeer(sim, p)
		}
	}
}

// Held returns how many peers hold code, call from the loop goroutine
func (s *Service) Held(code input.Code) int { return s.counts[code] }

func (s *Service) onMessage(p *Peer, data []byte) {
	msg, err := DecodeClient(data)
	if err != nil {
		s.malformed.Add(1)
		s.logger.Warn().Err(err).Uint32("peer", uint32(p.ID)).Msg("discarding malformed message")
		s.reply(p, ErrorMessage{Type: MsgError, Message: err.Error()})
		return
	}

	switch msg.Type {
	case MsgPress:
		s.post(p, func(sim *engine.Simulation) { s.press(sim, p, msg.Code) })

	case MsgRelease:
		s.post(p, func(sim *engine.Simulation) { s.release(sim, p, msg.Code) })

	case MsgPointer:
		s.post(p, func(sim *engine.Simulation) { sim.SetPointer(msg.X, msg.Y) })

	case MsgClearPointer:
		s.post(p, func(sim *engine.Simulation) { sim.ClearPointer() })

	case MsgRestart:
		s.post(p, func(sim *engine.Simulation) {
			if sim.State() != system.StateDestroyed {
				s.reply(p, ErrorMessage{Type: MsgError, Message: "restart is only available after the run ends"})
				return
			}
			sim.Restart()
		})

	case MsgRebind:
		action, ok := input.ParseAction(msg.Action)
		if !ok {
			s.reply(p, ErrorMessage{Type: MsgError, Message: "unknown action " + msg.Action})
			return
		}
		s.post(p, func(sim *engine.Simulation) { s.rebind(p, sim, action, msg.Code) })

	case MsgResetBindings:
		s.post(p, func(sim *engine.Simulation) {
			sim.ResetBindings()
			s.reply(p, BindingsMessage{Type: MsgBindings, Bindings: wireBindings(sim.Bindings())})
		})
	}
}

// rebind runs on the loop goroutine and answers rebound or conflict
func (s *Service) rebind(p *Peer, sim *engine.Simulation, action input.Action, code input.Code) {
	err := sim.Rebind(action, code)

	var conflict *input.ConflictError
	switch {
	case err == nil:
		s.reply(p, BindingMessage{
			Type:   MsgRebound,
			Action: action.String(),
			Codes:  sim.Bindings()[action],
		})
	case errors.As(err, &conflict):
		s.reply(p, BindingMessage{
			Type:    MsgConflict,
			Action:  action.String(),
			Code:    code,
			Holder:  conflict.Existing.String(),
			Message: conflict.Error(),
		})
	default:
		s.reply(p, ErrorMessage{Type: MsgError, Message: err.Error()})
	}
}

// post queues cmd, telling the peer when the loop inbox is full
func (s *Service) post(p *Peer, cmd engine.Command) {
	if !s.poster.Post(cmd) {
		s.reply(p, ErrorMessage{Type: MsgError, Message: "server busy"})
	}
}

func (s *Service) reply(p *Peer, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal reply")
		return
	}
	p.Send(data)
}
