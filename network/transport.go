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

// Transport owns the HTTP listener serving a handler
type Transport struct {
	config   *Config
	listener net.Listener
	server   *http.Server

	addr    atomic.Pointer[string]
	running atomic.Bool
	wg      sync.WaitGroup
	errCh   chan error
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		config: cfg,
		errCh:  make(chan error, 1),
	}
}

// Start binds the configured address and serves handler in the background
func (t *Transport) Start(handler http.Handler) error {
	if !t.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return err
	}

	t.listener = ln
	addr := ln.Addr().String()
	t.addr.Store(&addr)
	t.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: t.config.WriteTimeout,
	}

	t.wg.Add(1)
	go t.serve()

	return nil
}

func (t *Transport) serve() {
	defer t.wg.Done()
	if err := t.server.Serve(t.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.errCh <- err
	}
}

// Errors delivers a fatal serve error, at most one
func (t *Transport) Errors() <-chan error {
	return t.errCh
}

// Addr returns the bound address, useful with port 0
func (t *Transport) Addr() string {
	if a := t.addr.Load(); a != nil {
		return *a
	}
	return ""
}

// Stop shuts the server down, waiting up to timeout for in-flight requests
// Hijacked websocket connections are not tracked by the server and must be closed by the owner
func (t *Transport) Stop(timeout time.Duration) error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := t.server.Shutdown(ctx)
	t.wg.Wait()

	return err
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
