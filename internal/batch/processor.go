package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"stack-carousel/internal/cards"
	"stack-carousel/internal/carousel"
	"stack-carousel/internal/postprocess"
	"stack-carousel/internal/raster"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Canvas      raster.Canvas
	Cards       cards.Resolver
	Supersample int
	Workers     int
	// Progress, when non-nil, is called periodically with frames done so far.
	Progress func(done, total int, rate float64)
}

// Frame is an immutable snapshot of the carousel after one tick. Cards are
// in draw order and carry the image key resolved through Config.Cards.
type Frame struct {
	Index int
	Event carousel.Event
	Cards []carousel.Card[string]
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Path    string
	Image   *image.NRGBA
	Success bool
	Error   string
}

// FramePath returns the output path of frame i relative to the output dir.
func FramePath(i int) string {
	return filepath.Join("frames", fmt.Sprintf("%04d.webp", i))
}

// Run renders all frames using a worker pool.
func Run(cfg Config, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Supersample <= 0 {
		cfg.Supersample = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && cfg.Progress != nil {
					rate := float64(p) / time.Since(start).Seconds()
					cfg.Progress(int(p), total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

// Render composes a single frame without writing it.
func Render(cfg Config, f Frame) *image.NRGBA {
	canvas := cfg.Canvas
	if cfg.Supersample > 1 {
		canvas = canvas.Scaled(cfg.Supersample)
	}

	layers := make([]raster.Layer, 0, len(f.Cards))
	for _, c := range f.Cards {
		l := raster.Layer{Transform: c.Transform}
		if cfg.Cards != nil {
			if img := cfg.Cards.Resolve(c.Payload); img != nil {
				l.Image = img
			}
		}
		layers = append(layers, l)
	}

	img := raster.Compose(canvas, layers)
	return postprocess.Downsample(img, cfg.Canvas.Width, cfg.Canvas.Height)
}

func processFrame(cfg Config, f Frame) Result {
	res := Result{Index: f.Index, Path: FramePath(f.Index)}

	img := Render(cfg, f)
	res.Image = img

	outPath := filepath.Join(cfg.OutputDir, res.Path)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	out, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer out.Close()

	if err := nativewebp.Encode(out, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
