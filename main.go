package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
	"github.com/dlb3d/go-sprite-extrude/pkg/scene"
)

func main() {
	sceneArg := flag.String("scene", "default", "Built-in scene name or path to a scene .yaml")
	samples := flag.Int("samples", 16, "Samples per pixel")
	outDir := flag.String("out", "output", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Sprite Extruder")
		fmt.Println("Usage: sprite-extrude [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Built-in scenes:")
		fmt.Println("  default - procedural ring sprite on a turned cube")
		fmt.Println("  sheet   - frame of a 2x2 procedural spritesheet")
		fmt.Println("  hollow  - hollow square frame with infinite holes")
		fmt.Println()
		fmt.Println("Output is saved to <out>/<scene>/render_<timestamp>.png")
		return
	}

	selected, err := scene.CreateScene(*sceneArg)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	outputDir := filepath.Join(*outDir, selected.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendering scene %q at %dx%d...\n", selected.Name, selected.Width, selected.Height)

	r := renderer.NewRenderer(selected, selected.Width, selected.Height)
	r.MergeSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: *samples})

	startTime := time.Now()
	img, stats := r.RenderPass()
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename := outputFilename(outputDir, time.Now())

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// outputFilename builds a timestamped PNG path inside the output directory
func outputFilename(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}
