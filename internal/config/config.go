package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"stack-carousel/internal/carousel"
	"stack-carousel/internal/raster"
)

// Config holds all configurable paths, carousel options and render settings.
type Config struct {
	// Paths
	CardDir   string `json:"card_dir"`
	Script    string `json:"script"`
	OutputDir string `json:"output_dir"`

	// Cards
	CardCount int `json:"card_count"` // placeholders when no card_dir

	// Carousel
	Disabled        bool    `json:"disabled"`
	ItemWidth       float64 `json:"item_width"`
	ItemHeight      float64 `json:"item_height"`
	ChangeThreshold float64 `json:"change_threshold"`
	Wrap            string  `json:"wrap"`

	// Animation
	FPS        int     `json:"fps"`
	Settle     string  `json:"settle"` // "timing" or "spring"
	SettleMS   int     `json:"settle_ms"`
	SpringFreq float64 `json:"spring_frequency"`
	SpringDamp float64 `json:"spring_damping"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	LeftMargin  float64 `json:"left_margin"`
	Background  string  `json:"background"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`

	LogLevel string `json:"log_level"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	CardDir   string
	Script    string
	OutputDir string
	CardCount int
	Workers   int
	Disabled  bool
	LogLevel  string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.CardDir != "" {
		c.CardDir = flags.CardDir
	}
	if flags.Script != "" {
		c.Script = flags.Script
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.CardCount > 0 {
		c.CardCount = flags.CardCount
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Disabled {
		c.Disabled = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.CardDir != "" && !filepath.IsAbs(c.CardDir) {
		c.CardDir = filepath.Clean(c.CardDir)
	}

	// Carousel defaults
	if c.CardCount <= 0 {
		c.CardCount = 5
	}
	if c.ItemWidth == 0 {
		c.ItemWidth = carousel.DefaultItemWidth
	}
	if c.ChangeThreshold == 0 {
		c.ChangeThreshold = carousel.DefaultChangeThreshold
	}
	if c.Wrap == "" {
		c.Wrap = carousel.WrapAccumulate.String()
	}

	// Animation defaults
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Settle == "" {
		c.Settle = "timing"
	}
	if c.SettleMS <= 0 {
		c.SettleMS = 300
	}
	if c.SpringFreq <= 0 {
		c.SpringFreq = 8
	}
	if c.SpringDamp <= 0 {
		c.SpringDamp = 0.8
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.LeftMargin <= 0 {
		c.LeftMargin = float64(c.Width) * 0.05
	}
	if c.Background == "" {
		c.Background = "#101418"
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Carousel returns the carousel options described by the config.
// Zero-valued numeric fields are only filled by Resolve; a negative width or
// threshold is passed through for the carousel to reject at mount.
func (c Config) Carousel() (carousel.Options, error) {
	wrap, err := carousel.ParseWrapMode(c.Wrap)
	if err != nil {
		return carousel.Options{}, err
	}
	return carousel.Options{
		Disabled:        c.Disabled,
		ItemWidth:       c.ItemWidth,
		ItemHeight:      c.ItemHeight,
		ChangeThreshold: c.ChangeThreshold,
		Wrap:            wrap,
	}, nil
}

// Canvas returns the output frame geometry.
func (c Config) Canvas() (raster.Canvas, error) {
	bg, err := ParseHexColor(c.Background)
	if err != nil {
		return raster.Canvas{}, err
	}
	return raster.Canvas{
		Width:      c.Width,
		Height:     c.Height,
		LeftMargin: c.LeftMargin,
		ItemWidth:  c.ItemWidth,
		ItemHeight: c.ItemHeight,
		Background: bg,
	}, nil
}

// SettleDuration returns the timed settle length.
func (c Config) SettleDuration() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// UseSpring reports whether settles use a spring instead of a timed curve.
func (c Config) UseSpring() (bool, error) {
	switch c.Settle {
	case "", "timing":
		return false, nil
	case "spring":
		return true, nil
	default:
		return false, fmt.Errorf("config: invalid settle %q", c.Settle)
	}
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: invalid log level %q", s)
	}
}

// ParseHexColor parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	c, err := gg.ParseHex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: %w", err)
	}
	return c.Color().(color.NRGBA), nil
}
