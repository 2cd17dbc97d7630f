package renderer

import (
	"context"
	"testing"
)

func TestProgressiveRenderer_SamplesForPass(t *testing.T) {
	pr := NewProgressiveRenderer(newTestScene(16, 16), 16, 16, ProgressiveConfig{
		TileSize:           16,
		InitialSamples:     1,
		MaxSamplesPerPixel: 16,
		MaxPasses:          4,
	}, nil)

	expected := []int{1, 6, 11, 16}
	for pass := 1; pass <= 4; pass++ {
		if got := pr.samplesForPass(pass); got != expected[pass-1] {
			t.Errorf("pass %d target = %d, expected %d", pass, got, expected[pass-1])
		}
	}
}

func TestProgressiveRenderer_SinglePassUsesMax(t *testing.T) {
	pr := NewProgressiveRenderer(newTestScene(16, 16), 16, 16, ProgressiveConfig{
		TileSize:           16,
		InitialSamples:     1,
		MaxSamplesPerPixel: 8,
		MaxPasses:          1,
	}, nil)
	if got := pr.samplesForPass(1); got != 8 {
		t.Errorf("single pass target = %d, expected the full budget 8", got)
	}
}

func TestProgressiveRenderer_RenderProgressive(t *testing.T) {
	scene := newTestScene(32, 32)
	pr := NewProgressiveRenderer(scene, 32, 32, ProgressiveConfig{
		TileSize:           16,
		InitialSamples:     1,
		MaxSamplesPerPixel: 4,
		MaxPasses:          2,
		NumWorkers:         2,
	}, nil)

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	tileCount := 0
	tileDone := make(chan struct{})
	go func() {
		for range tileChan {
			tileCount++
		}
		close(tileDone)
	}()

	var passes []PassResult
	for pass := range passChan {
		passes = append(passes, pass)
	}
	<-tileDone

	if err := <-errChan; err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if len(passes) != 2 {
		t.Fatalf("got %d passes, expected 2", len(passes))
	}
	if !passes[len(passes)-1].IsLast {
		t.Error("final pass should be marked last")
	}
	for i, pass := range passes {
		if pass.PassNumber != i+1 {
			t.Errorf("pass %d numbered %d", i, pass.PassNumber)
		}
		if pass.Image.Bounds().Dx() != 32 || pass.Image.Bounds().Dy() != 32 {
			t.Errorf("pass %d image bounds %v", i, pass.Image.Bounds())
		}
	}

	// Later passes accumulate on top of earlier ones; adaptive stopping may
	// add nothing for converged pixels but never discards samples.
	if passes[1].Stats.AverageSamples < passes[0].Stats.AverageSamples {
		t.Errorf("samples went backwards: pass 1 avg %.1f, pass 2 avg %.1f",
			passes[0].Stats.AverageSamples, passes[1].Stats.AverageSamples)
	}
	if tileCount == 0 {
		t.Error("expected tile completion updates")
	}

	// The rendered sprite shows up in the final image.
	final := passes[len(passes)-1].Image
	if c := final.RGBAAt(16, 16); c.R < 200 {
		t.Errorf("center pixel %v, expected the sprite red", c)
	}
}

func TestProgressiveRenderer_Cancellation(t *testing.T) {
	pr := NewProgressiveRenderer(newTestScene(16, 16), 16, 16, ProgressiveConfig{
		TileSize:           16,
		InitialSamples:     1,
		MaxSamplesPerPixel: 4,
		MaxPasses:          2,
		NumWorkers:         1,
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})
	for range passChan {
	}
	if err := <-errChan; err != context.Canceled {
		t.Errorf("got error %v, expected context.Canceled", err)
	}
}

func TestWorkerPool_RendersAllTiles(t *testing.T) {
	scene := newTestScene(32, 32)
	pool := NewWorkerPool(scene, 32, 32, 16, 2)
	pool.Start()

	pixelStats := make([][]PixelStats, 32)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, 32)
	}

	tiles := NewTileGrid(32, 32, 16)
	for id, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TargetSamples: 2, TaskID: id, PixelStats: pixelStats})
	}

	seen := make(map[int]bool)
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("worker pool closed early")
		}
		if result.Error != nil {
			t.Fatalf("tile %d failed: %v", result.TaskID, result.Error)
		}
		seen[result.TaskID] = true
	}
	pool.Stop()

	if len(seen) != len(tiles) {
		t.Errorf("completed %d distinct tiles, expected %d", len(seen), len(tiles))
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if pixelStats[y][x].SampleCount == 0 {
				t.Fatalf("pixel (%d,%d) never sampled", x, y)
			}
		}
	}
}
