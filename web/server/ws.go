package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
	"github.com/dlb3d/go-sprite-extrude/pkg/scene"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from the same origin; anything else is rejected by
	// the default origin check.
}

// ProgressUpdate is one websocket message per completed progressive pass
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64-encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	Error       string `json:"error,omitempty"`
}

// handleWebSocket streams progressive passes for one render over a
// websocket connection. Query parameters: scene, width, height, samples,
// passes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Size overrides go into the configuration before the scene is built,
	// so the camera viewport matches the framebuffer.
	cfg, err := scene.ConfigFor(query.Get("scene"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if v := queryInt(query.Get("width"), 0); v > 0 {
		cfg.Width = v
	}
	if v := queryInt(query.Get("height"), 0); v > 0 {
		cfg.Height = v
	}
	selected, err := cfg.Build()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	maxSamples := queryInt(query.Get("samples"), 16)
	maxPasses := queryInt(query.Get("passes"), 4)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade failed: %v\n", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client sends nothing after the handshake; the read loop exists
	// to detect disconnects and cancel the render.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = maxSamples
	config.MaxPasses = maxPasses

	pr := renderer.NewProgressiveRenderer(selected, selected.Width, selected.Height, config, s.logger)
	passChan, _, errChan := pr.RenderProgressive(ctx, renderer.RenderOptions{})

	for pass := range passChan {
		var buf bytes.Buffer
		if err := png.Encode(&buf, pass.Image); err != nil {
			s.logger.Printf("Error encoding pass %d: %v\n", pass.PassNumber, err)
			return
		}

		update := ProgressUpdate{
			PassNumber:  pass.PassNumber,
			TotalPasses: config.MaxPasses,
			ImageData:   base64.StdEncoding.EncodeToString(buf.Bytes()),
			Stats:       statsFrom(pass.Stats),
			IsComplete:  pass.IsLast,
		}
		if err := conn.WriteJSON(update); err != nil {
			// Client went away; the cancelled context stops the render.
			return
		}
	}

	if err := <-errChan; err != nil && ctx.Err() == nil {
		conn.WriteJSON(ProgressUpdate{Error: err.Error(), IsComplete: true})
	}
}

func queryInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
