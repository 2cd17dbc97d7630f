package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
	"github.com/dlb3d/go-sprite-extrude/pkg/scene"
)

// RenderRequest is the body of POST /api/render
type RenderRequest struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MaxSamples int    `json:"maxSamples"`
}

// renderRequestSchema validates render requests before any work starts
const renderRequestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["scene"],
	"properties": {
		"scene":      {"type": "string", "minLength": 1},
		"width":      {"type": "integer", "minimum": 16, "maximum": 4096},
		"height":     {"type": "integer", "minimum": 16, "maximum": 4096},
		"maxSamples": {"type": "integer", "minimum": 1, "maximum": 1024}
	},
	"additionalProperties": false
}`

var compiledRenderSchema = jsonschema.MustCompileString("render-request.json", renderRequestSchema)

// ValidateRenderRequest checks raw JSON against the render request schema
// and decodes it
func ValidateRenderRequest(body []byte) (RenderRequest, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return RenderRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledRenderSchema.Validate(raw); err != nil {
		return RenderRequest{}, fmt.Errorf("invalid render request: %w", err)
	}

	var req RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return RenderRequest{}, err
	}
	return req, nil
}

// handleRender renders a scene in one shot and returns the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(http.MaxBytesReader(w, r.Body, 1<<16)); err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	req, err := ValidateRenderRequest(body.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Size overrides go into the configuration before the scene is built,
	// so the camera viewport matches the framebuffer.
	cfg, err := scene.ConfigFor(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Width > 0 {
		cfg.Width = req.Width
	}
	if req.Height > 0 {
		cfg.Height = req.Height
	}
	selected, err := cfg.Build()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rend := renderer.NewRenderer(selected, selected.Width, selected.Height)
	if req.MaxSamples > 0 {
		rend.MergeSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: req.MaxSamples})
	}

	img, stats := rend.RenderPass()
	s.logger.Printf("Rendered %s %dx%d (%.1f samples/pixel)\n",
		selected.Name, selected.Width, selected.Height, stats.AverageSamples)

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.logger.Printf("Error encoding PNG: %v\n", err)
	}
}
