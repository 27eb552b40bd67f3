package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stack-carousel/internal/anim"
	"stack-carousel/internal/batch"
	"stack-carousel/internal/cards"
	"stack-carousel/internal/carousel"
	"stack-carousel/internal/config"
	"stack-carousel/internal/gesture"
	"stack-carousel/internal/postprocess"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	cardDir := flag.String("cards", "", "Directory of card images (default: placeholders)")
	count := flag.Int("count", 0, "Number of placeholder cards (default: 5)")
	scriptFile := flag.String("script", "", "Path to gesture script JSON (default: built-in demo)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	disabled := flag.Bool("disabled", false, "Render the carousel in its disabled state")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		CardDir:   *cardDir,
		Script:    *scriptFile,
		OutputDir: *outputDir,
		CardCount: *count,
		Workers:   *workers,
		Disabled:  *disabled,
		LogLevel:  *logLevel,
	})

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	carousel.SetLogger(logger)

	opts, err := cfg.Carousel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	canvas, err := cfg.Canvas()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Load cards
	faceW, faceH := faceSize(cfg)
	cache := cards.NewLoaderCache(func(path string) (*image.NRGBA, error) {
		img, err := cards.LoadImage(path)
		if err != nil {
			logger.Warn("card skipped", "path", path, "error", err)
			return nil, err
		}
		return postprocess.Fit(postprocess.TrimAlpha(img), faceW, faceH), nil
	})
	keys, err := loadCards(cfg, cache, faceW, faceH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cards: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cards: %d\n", len(keys))

	// Load gesture script
	script := gesture.Default()
	if cfg.Script != "" {
		script, err = gesture.Load(cfg.Script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
			os.Exit(1)
		}
	}
	fps := cfg.FPS
	if script.FPS > 0 {
		fps = script.FPS
	}
	timeline, err := script.Compile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling script: %v\n", err)
		os.Exit(1)
	}

	// Mount carousel
	clock, err := newClock(cfg, fps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	c, err := carousel.New(keys, opts, clock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error mounting carousel: %v\n", err)
		os.Exit(1)
	}

	// Play the script, snapshotting every frame
	var frames []batch.Frame
	gesture.Play(timeline, c, clock, func(i int) {
		frames = append(frames, batch.Frame{
			Index: i,
			Event: c.Controller().Snapshot(),
			Cards: c.Ordered(),
		})
	})

	fmt.Printf("Stack carousel → WebP (%s wrap, %s settle)\n", cfg.Wrap, cfg.Settle)
	fmt.Printf("Frames: %d @ %d fps, Workers: %d\n", len(frames), fps, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Canvas:      canvas,
		Cards:       cache,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Progress: func(done, total int, rate float64) {
			fmt.Printf("  [%d/%d] %.1f frames/sec\n", done, total, rate)
		},
	}

	results := batch.Run(batchCfg, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(frames))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Index, e.Error)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Write animation
	if imgs := batch.Images(results); len(imgs) > 0 {
		aniPath := filepath.Join(cfg.OutputDir, "carousel.webp")
		if err := batch.WriteAnimation(aniPath, imgs, fps); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: animation write failed: %v\n", err)
		} else {
			fmt.Printf("Animation: %s\n", aniPath)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, frames); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// faceSize returns the pixel size card faces are prepared at: the card box
// at supersampled resolution.
func faceSize(cfg config.Config) (w, h int) {
	w = int(cfg.ItemWidth) * cfg.Supersample
	h = cfg.Height * cfg.Supersample
	if cfg.ItemHeight > 0 && int(cfg.ItemHeight) < cfg.Height {
		h = int(cfg.ItemHeight) * cfg.Supersample
	}
	return w, h
}

// loadCards fills cache and returns the card keys in display order: image
// files from the card directory, or generated placeholder faces.
func loadCards(cfg config.Config, cache *cards.Cache, w, h int) ([]string, error) {
	if cfg.CardDir != "" {
		idx := cards.BuildIndex(cfg.CardDir)
		if idx.Len() == 0 {
			return nil, fmt.Errorf("no card images in %s", cfg.CardDir)
		}
		return idx.Paths(), nil
	}

	keys := make([]string, cfg.CardCount)
	for i := range keys {
		img, err := cards.Placeholder(i, w, h)
		if err != nil {
			return nil, err
		}
		keys[i] = fmt.Sprintf("placeholder-%d", i)
		cache.Put(keys[i], img)
	}
	return keys, nil
}

func newClock(cfg config.Config, fps int) (*anim.Clock, error) {
	spring, err := cfg.UseSpring()
	if err != nil {
		return nil, err
	}
	if spring {
		return anim.NewClock(fps, anim.WithSpring(cfg.SpringFreq, cfg.SpringDamp)), nil
	}
	return anim.NewClock(fps, anim.WithDuration(cfg.SettleDuration())), nil
}
