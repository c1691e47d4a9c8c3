package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/race"
	"github.com/lixenwraith/swimrace/systems"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestHub serves a running hub through httptest
func newTestHub(t *testing.T, mutate func(*Config)) (*Hub, *httptest.Server) {
	t.Helper()

	session := race.New(engine.Options{
		Score:     500,
		Inventory: map[components.PowerUpKind]int{components.PowerUpShield: 1},
		Seed:      11,
		Logger:    quietLogger(),
	}, systems.DefaultLayoutCounts)

	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	cfg.BroadcastEvery = 1
	if mutate != nil {
		mutate(cfg)
	}

	hub := NewHub(session, cfg, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	if err := hub.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		cancel()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads snapshots until match succeeds or the deadline passes
func readUntil(t *testing.T, conn *websocket.Conn, f Format, match func(engine.Snapshot) bool) engine.Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		snap, err := DecodeSnapshot(data, f)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if match(snap) {
			return snap
		}
	}
}

func TestMsgpackUsesJSONFieldNames(t *testing.T) {
	s := race.New(engine.Options{Seed: 3, Logger: quietLogger()}, systems.DefaultLayoutCounts)
	snap := s.Snapshot()

	data, err := EncodeSnapshot(&snap, FormatMsgpack)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	var raw map[string]any
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"sessionId", "state", "racers", "obstacles", "inventory"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("msgpack frame missing key %q", key)
		}
	}
	if _, ok := raw["winner"]; ok {
		t.Error("omitempty must drop the empty winner")
	}

	back, err := DecodeSnapshot(data, FormatMsgpack)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if back.SessionID != s.ID || len(back.Racers) != 4 || len(back.Obstacles) != 8 {
		t.Errorf("Unexpected decoded snapshot %+v", back)
	}
}

func TestDecodeClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"Input", `{"type":"input","up":true}`, nil},
		{"Start", `{"type":"start"}`, nil},
		{"Power-up", `{"type":"powerup","kind":"shield"}`, nil},
		{"Unknown type", `{"type":"teleport"}`, ErrUnknownMessage},
		{"Garbage", `not json`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClientMessage([]byte(tt.data))
			switch {
			case tt.name == "Garbage":
				if err == nil {
					t.Error("Expected decode error")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
			case err != nil:
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("json: got %v, %v", f, err)
	}
	if f, err := ParseFormat("msgpack"); err != nil || f != FormatMsgpack {
		t.Errorf("msgpack: got %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected error for xml")
	}
}

func TestPeerSendDropsWhenFull(t *testing.T) {
	p := newPeer(1, nil, FormatJSON, 1)

	if !p.Send([]byte("a")) {
		t.Fatal("First frame must queue")
	}
	if p.Send([]byte("b")) {
		t.Error("Second frame must drop while the queue is full")
	}

	p.Close()
	<-p.sendCh
	if p.Send([]byte("c")) {
		t.Error("Closed peer must refuse frames")
	}
}

func TestHubStreamsJSONAndAcceptsStart(t *testing.T) {
	hub, srv := newTestHub(t, nil)
	conn := dial(t, srv, "?format=json")

	first := readUntil(t, conn, FormatJSON, func(engine.Snapshot) bool { return true })
	if first.SessionID != hub.session.ID {
		t.Errorf("Expected session %s, got %s", hub.session.ID, first.SessionID)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"start"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	snap := readUntil(t, conn, FormatJSON, func(s engine.Snapshot) bool { return s.State == "countdown" })
	if snap.Countdown == "" {
		t.Error("Countdown snapshot must carry a label")
	}
}

func TestHubDefaultsToMsgpack(t *testing.T) {
	_, srv := newTestHub(t, nil)
	conn := dial(t, srv, "")

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("Expected binary frame, got type %d", mt)
	}
	if _, err := DecodeSnapshot(data, FormatMsgpack); err != nil {
		t.Errorf("Frame is not a msgpack snapshot: %v", err)
	}
}

func TestHubDiscardsMalformedMessages(t *testing.T) {
	hub, srv := newTestHub(t, nil)
	conn := dial(t, srv, "?format=json")
	readUntil(t, conn, FormatJSON, func(engine.Snapshot) bool { return true })

	for _, msg := range []string{`garbage`, `{"type":"powerup","kind":"jetpack"}`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"start"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Connection survives and the start still lands
	readUntil(t, conn, FormatJSON, func(s engine.Snapshot) bool { return s.State == "countdown" })
	if got := hub.statMalformed.Load(); got != 2 {
		t.Errorf("Expected 2 malformed messages, got %d", got)
	}
}

func TestHubHTTPEndpoints(t *testing.T) {
	hub, srv := newTestHub(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz: %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var snap engine.Snapshot
	err = json.NewDecoder(resp.Body).Decode(&snap)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.SessionID != hub.session.ID || snap.Inventory["shield"] != 1 {
		t.Errorf("Unexpected snapshot %+v", snap)
	}

	resp, err = http.Get(srv.URL + "/ws?format=xml")
	if err != nil {
		t.Fatalf("ws: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Unknown format must be rejected, got %d", resp.StatusCode)
	}
}

func TestHubMaxPeers(t *testing.T) {
	hub, srv := newTestHub(t, func(c *Config) { c.MaxPeers = 1 })

	// The first frame arrives after registration
	conn := dial(t, srv, "?format=json")
	readUntil(t, conn, FormatJSON, func(engine.Snapshot) bool { return true })
	if hub.PeerCount() != 1 {
		t.Fatalf("Expected 1 peer, got %d", hub.PeerCount())
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Second subscriber must be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %v", resp)
	}
	if resp != nil {
		resp.Body.Close()
	}
}

func TestHubClosedRejectsSubscribers(t *testing.T) {
	hub, srv := newTestHub(t, nil)
	hub.Close()

	if !hub.session.Closed() {
		t.Error("Closing the hub must close the session")
	}
	if err := hub.Start(context.Background()); !errors.Is(err, ErrHubClosed) {
		t.Errorf("Expected ErrHubClosed, got %v", err)
	}

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 after close, got %d", resp.StatusCode)
	}
}

func TestTransportServesHub(t *testing.T) {
	session := race.New(engine.Options{Seed: 5, Logger: quietLogger()}, systems.DefaultLayoutCounts)
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	hub := NewHub(session, cfg, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.ListenAndServe(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for hub.transport.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	addr := hub.transport.Addr()
	if addr == "" {
		t.Fatal("Transport never bound")
	}

	resp, err := http.Get("http://" + addr + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
	if hub.transport.IsRunning() {
		t.Error("Transport must stop with the hub")
	}
}
