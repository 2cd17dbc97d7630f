package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
	"github.com/dlb3d/go-sprite-extrude/pkg/scene"
)

// Server serves the render UI, a websocket progressive render stream, and
// the JSON API
type Server struct {
	port      int
	staticDir string
	logger    core.Logger
}

// NewServer creates a new web server
func NewServer(port int, staticDir string, logger core.Logger) *Server {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	if staticDir == "" {
		staticDir = "web/static"
	}
	return &Server{port: port, staticDir: staticDir, logger: logger}
}

// Stats is the JSON shape of render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
}

func statsFrom(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    rs.TotalPixels,
		TotalSamples:   rs.TotalSamples,
		AverageSamples: rs.AverageSamples,
		MaxSamples:     rs.MaxSamples,
		MinSamples:     rs.MinSamples,
		MaxSamplesUsed: rs.MaxSamplesUsed,
	}
}

// Handler builds the server's route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Run starts the server and shuts it down when ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("Web server listening on http://localhost%s\n", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes, gzip-compressed when the client
// accepts it
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneInfo struct {
		Name string `json:"name"`
	}
	var scenes []sceneInfo
	for _, name := range scene.BuiltinNames() {
		scenes = append(scenes, sceneInfo{Name: name})
	}

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		json.NewEncoder(gz).Encode(scenes)
		return
	}
	json.NewEncoder(w).Encode(scenes)
}
