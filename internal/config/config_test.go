package config

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stack-carousel/internal/carousel"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, "renders", c.OutputDir)
	assert.Equal(t, 5, c.CardCount)
	assert.Equal(t, 200.0, c.ItemWidth)
	assert.Equal(t, 80.0, c.ChangeThreshold)
	assert.Equal(t, "accumulate", c.Wrap)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, "timing", c.Settle)
	assert.Equal(t, 300*time.Millisecond, c.SettleDuration())
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 360, c.Height)
	assert.Equal(t, 32.0, c.LeftMargin)
	assert.Equal(t, 1, c.Supersample)
	assert.Positive(t, c.Workers)
	assert.Equal(t, "info", c.LogLevel)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	c := Config{OutputDir: "from-file", CardCount: 3, Workers: 2}
	c.Resolve(Flags{OutputDir: "from-flag", CardCount: 7, Disabled: true, LogLevel: "debug"})

	assert.Equal(t, "from-flag", c.OutputDir)
	assert.Equal(t, 7, c.CardCount)
	assert.Equal(t, 2, c.Workers)
	assert.True(t, c.Disabled)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"card_count":4,"item_width":150,"wrap":"modulo","settle":"spring","background":"#ff000080"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{})

	opts, err := c.Carousel()
	require.NoError(t, err)
	assert.Equal(t, carousel.WrapModulo, opts.Wrap)
	assert.Equal(t, 150.0, opts.ItemWidth)
	assert.NoError(t, opts.Validate(c.CardCount))

	spring, err := c.UseSpring()
	require.NoError(t, err)
	assert.True(t, spring)

	canvas, err := c.Canvas()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, canvas.Background)
	assert.Equal(t, 150.0, canvas.ItemWidth)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestInvalidValues(t *testing.T) {
	c := Config{Wrap: "spiral", Settle: "bounce", Background: "red"}

	_, err := c.Carousel()
	assert.Error(t, err)
	_, err = c.UseSpring()
	assert.Error(t, err)
	_, err = c.Canvas()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#101418":   {R: 0x10, G: 0x14, B: 0x18, A: 255},
		"FF000080":  {R: 255, A: 128},
		"#fff":      {R: 255, G: 255, B: 255, A: 255},
		"#0f08":     {G: 255, A: 136},
		"#AbCdEf01": {R: 0xab, G: 0xcd, B: 0xef, A: 1},
	}
	for in, want := range cases {
		got, err := ParseHexColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "#12345", "#gg0000", "red", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
