package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Transport owns the listener and HTTP server the websocket endpoint is served on
type Transport struct {
	config   *Config
	listener net.Listener
	server   *http.Server

	running atomic.Bool
	wg      sync.WaitGroup
	errMu   sync.Mutex
	err     error
}

// NewTransport creates a transport serving handler
func NewTransport(cfg *Config, handler http.Handler) *Transport {
	return &Transport{
		config: cfg,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: cfg.WriteTimeout,
		},
	}
}

// Start binds the configured address and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.listener = ln

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.errMu.Lock()
			t.err = err
			t.errMu.Unlock()
		}
	}()

	return nil
}

// Addr returns the bound address, nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Stop halts the server, waiting up to WriteTimeout for in-flight handlers
// Hijacked websocket connections are not tracked by the server and must be closed separately
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), max(t.config.WriteTimeout, time.Second))
	defer cancel()
	err := t.server.Shutdown(ctx)
	t.wg.Wait()

	if err != nil {
		return err
	}
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
