// Package control exposes a WebSocket endpoint that feeds scene-load events
// onto the player's bus. It stands in for the host message bus that external
// producers would normally publish to.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/coder/websocket"
	"github.com/mvaleri/go-stageloop/stageloop/events"
)

// Server accepts scene-load commands over WebSocket and publishes them to a
// bus. It never touches player state directly; the playback loop drains the
// bus on its own goroutine.
type Server struct {
	bus        *events.Bus
	httpServer *http.Server
	listener   net.Listener
}

func NewServer(bus *events.Bus) *Server {
	return &Server{bus: bus}
}

// Listen starts serving on addr. Non-blocking; the accept loop runs on its
// own goroutine.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("control: listen %s: %w", addr, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/load", s.handleLoad)
	s.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Control server stopped", "error", err)
		}
	}()

	slog.Info("Control endpoint listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound listen address, useful when addr was ":0".
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Error("WebSocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}

		var e events.LoadScene
		if err := json.Unmarshal(data, &e); err != nil {
			slog.Error("Malformed scene load payload", "error", err)
			conn.Close(websocket.StatusInvalidFramePayloadData, "invalid payload")
			return
		}

		if err := validate(e); err != nil {
			slog.Error("Rejected scene load payload", "error", err)
			conn.Close(websocket.StatusPolicyViolation, err.Error())
			return
		}

		if !s.bus.Publish(e) {
			slog.Warn("Event queue full, dropping scene load", "directory", e.Directory)
		}
	}
}

func validate(e events.LoadScene) error {
	if e.Directory == "" {
		return errors.New("directory is required")
	}
	if e.LastFrameIndex < 0 {
		return errors.New("last_frame_index must be non-negative")
	}
	return nil
}
