package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dlb3d/go-sprite-extrude/pkg/scene"
)

func TestSceneResolution(t *testing.T) {
	tests := []struct {
		name        string
		sceneArg    string
		expectError bool
	}{
		{"default scene", "default", false},
		{"sheet scene", "sheet", false},
		{"hollow scene", "hollow", false},
		{"YAML path", "scenes/example.yaml", false},
		{"unknown scene", "nonexistent", true},
		{"missing YAML path", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := scene.CreateScene(tt.sceneArg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.sceneArg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneArg, err)
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.Width, s.Height)
			}
			if s.Camera() == nil {
				t.Error("Scene camera should not be nil")
			}
		})
	}
}

func TestOutputFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	got := outputFilename(filepath.Join("output", "default"), now)
	expected := filepath.Join("output", "default", "render_20260314_150926.png")
	if got != expected {
		t.Errorf("outputFilename = %q, expected %q", got, expected)
	}
}
