package carousel

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTransformControlPoints(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   Transform
	}{
		{"front", 0, Transform{Opacity: 1, StackOrder: 2, TranslateX: 0, Scale: 1}},
		{"one slot left", -200, Transform{Opacity: 1 - 200.0/600, StackOrder: 1, TranslateX: -50, Scale: 0.85}},
		{"two slots left", -400, Transform{Opacity: 1 - 400.0/600, StackOrder: -1, TranslateX: -50, Scale: 0.85}},
		{"half right", 100, Transform{Opacity: 1, StackOrder: 2, TranslateX: 100, Scale: 1}},
		{"accelerating exit", 150, Transform{Opacity: 1, StackOrder: 2, TranslateX: 250, Scale: 1}},
		{"beyond right", 300, Transform{Opacity: 1, StackOrder: 2, TranslateX: 400, Scale: 1}},
		{"far left", -1000, Transform{Opacity: 0, StackOrder: -1, TranslateX: -50, Scale: 0.85}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTransform(tt.offset)
			assert.InDelta(t, tt.want.Opacity, got.Opacity, 1e-9)
			assert.InDelta(t, tt.want.StackOrder, got.StackOrder, 1e-9)
			assert.InDelta(t, tt.want.TranslateX, got.TranslateX, 1e-9)
			assert.InDelta(t, tt.want.Scale, got.Scale, 1e-9)
		})
	}
}

func TestComputeTransformScaleBoundaries(t *testing.T) {
	assert.Equal(t, 0.85, ComputeTransform(-200).Scale)
	assert.Equal(t, 1.0, ComputeTransform(0).Scale)
	assert.Equal(t, 1.0, ComputeTransform(300).Scale)
}

func TestComputeTransformIsPure(t *testing.T) {
	for _, off := range []float64{-750, -333.3, -1, 0, 42.5, 199, 1e6} {
		assert.Equal(t, ComputeTransform(off), ComputeTransform(off))
	}
}

func TestComputeTransformFrontCardOnTop(t *testing.T) {
	front := ComputeTransform(0).StackOrder
	for _, off := range []float64{-600, -400, -200, -50} {
		assert.Less(t, ComputeTransform(off).StackOrder, front, "offset %v", off)
	}
}

func TestRenormalize(t *testing.T) {
	tests := []struct {
		name               string
		index, count       int
		drag, width, prior float64
		want               float64
	}{
		{"centre card settles on grid", 0, 4, 0, 200, 0, -1},
		{"last card wraps to the right", 3, 4, 0, 200, 0, 799},
		{"past right edge wraps left", 0, 4, 250, 200, -1, -801},
		{"past left edge wraps right", 2, 4, -250, 200, -1, 799},
		{"inside window unchanged", 1, 4, -30, 200, -1, -1},
		{"single card untouched", 0, 1, 500, 200, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Renormalize(tt.index, tt.count, tt.drag, tt.width, tt.prior)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenormalizeRejectsNonPositiveWidth(t *testing.T) {
	for _, w := range []float64{0, -200} {
		_, err := Renormalize(0, 2, 0, w, 0)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}

	_, err := Renormalize(0, 1, 0, 0, 0)
	assert.NoError(t, err, "single card needs no width")
}

func TestMapperKeepsEffectiveOffsetInWindow(t *testing.T) {
	for _, count := range []int{2, 3, 4, 5, 7} {
		for _, width := range []float64{150, 200, 250} {
			m, err := NewMapper(count, width, WrapAccumulate)
			require.NoError(t, err)

			lo := -float64(count-1) * width
			check := func(drag float64) {
				for slot := 0; slot < count; slot++ {
					eff, _, err := m.Map(slot, drag)
					require.NoError(t, err)
					assert.Greater(t, eff, lo, "count=%d width=%v slot=%d drag=%v", count, width, slot, drag)
					assert.LessOrEqual(t, eff, width, "count=%d width=%v slot=%d drag=%v", count, width, slot, drag)
				}
			}

			// Drag left across several loops, then back right past the start.
			for k := 0; k <= 120; k++ {
				check(0.37 - float64(k)*37.3)
			}
			for k := 120; k >= -120; k-- {
				check(0.37 - float64(k)*37.3)
			}
		}
	}
}

// steps returns the drag offsets from..to inclusive in increments of step.
func steps(from, to, step float64) []float64 {
	var out []float64
	if from <= to {
		for d := from; d <= to; d += step {
			out = append(out, d)
		}
	} else {
		for d := from; d >= to; d -= step {
			out = append(out, d)
		}
	}
	return out
}

// walkWindow maps every slot twice per drag, in order, and returns the
// first window violation or unstable repeat it sees.
func walkWindow(m *Mapper, count int, width float64, drags []float64) error {
	lo := -float64(count-1) * width
	for _, drag := range drags {
		for rep := 0; rep < 2; rep++ {
			for slot := 0; slot < count; slot++ {
				prior := m.Correction(slot)
				eff, _, err := m.Map(slot, drag)
				if err != nil {
					return err
				}
				if eff <= lo || eff > width {
					return fmt.Errorf("slot %d drag %v: effective %v outside (%v, %v]", slot, drag, eff, lo, width)
				}
				if rep == 1 && m.Mode() == WrapAccumulate && m.Correction(slot) != prior {
					return fmt.Errorf("slot %d drag %v: correction moved %v -> %v on a repeated offset", slot, drag, prior, m.Correction(slot))
				}
			}
		}
	}
	return nil
}

func TestMapperIntegerDragWalk(t *testing.T) {
	for _, count := range []int{2, 3, 4, 5, 7} {
		for _, width := range []float64{110, 150, 200, 250} {
			m, err := NewMapper(count, width, WrapAccumulate)
			require.NoError(t, err)
			require.Equal(t, WrapAccumulate, m.Mode())

			span := 3 * float64(count) * width
			drags := append(steps(0, -span, 1), steps(-span, span, 1)...)
			assert.NoError(t, walkWindow(m, count, width, drags), "count=%d width=%v", count, width)
		}
	}
}

func TestMapperSlotBoundaryDrags(t *testing.T) {
	for _, count := range []int{2, 3, 4, 5, 7} {
		for _, width := range []float64{110, 200, 202.5} {
			if !onGrid(float64(count) * width) {
				continue
			}
			span := 3 * count
			for _, shift := range []float64{-1, 0, 1} {
				m, err := NewMapper(count, width, WrapAccumulate)
				require.NoError(t, err)

				drags := []float64{0}
				for k := 0; k >= -span; k-- {
					drags = append(drags, float64(k)*width+shift)
				}
				for k := -span; k <= span; k++ {
					drags = append(drags, float64(k)*width+shift)
				}
				assert.NoError(t, walkWindow(m, count, width, drags), "count=%d width=%v shift=%v", count, width, shift)
			}
		}
	}
}

func TestMapperRepeatedOffsetOnRightEdge(t *testing.T) {
	m, err := NewMapper(4, 200, WrapAccumulate)
	require.NoError(t, err)

	// Slot 0 at drag 201 has raw offset exactly 200 with its initial -1.
	for range 4 {
		eff, tr, err := m.Map(0, 201)
		require.NoError(t, err)
		assert.Equal(t, 200.0, eff)
		assert.Equal(t, 1.0, tr.Opacity)
		assert.Equal(t, -1.0, m.Correction(0))
	}

	eff, _, err := m.Map(0, 202)
	require.NoError(t, err)
	assert.Equal(t, -599.0, eff, "one pixel further wraps to the left")
	assert.Equal(t, -801.0, m.Correction(0))
}

func TestNewMapperUsesModuloOffGrid(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	m, err := NewMapper(5, 123, WrapAccumulate)
	require.NoError(t, err)
	assert.Equal(t, WrapModulo, m.Mode())
	assert.Contains(t, buf.String(), "using modulo wrap")

	// At rest the last slot is parked inside the right edge.
	eff, _, err := m.Map(4, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, eff, 123.0)

	drags := append(steps(0, -3000, 1), steps(-3000, 3000, 7)...)
	assert.NoError(t, walkWindow(m, 5, 123, drags))

	buf.Reset()
	m, err = NewMapper(4, 200, WrapAccumulate)
	require.NoError(t, err)
	assert.Equal(t, WrapAccumulate, m.Mode())
	assert.Empty(t, buf.String())

	for _, width := range []float64{105, 123, 200.5} {
		m, err := NewMapper(5, width, WrapAccumulate)
		require.NoError(t, err)
		assert.Equal(t, WrapModulo, m.Mode(), "width %v", width)
	}
}

func TestMapperCorrectionsStayOnGrid(t *testing.T) {
	m, err := NewMapper(4, 200, WrapAccumulate)
	require.NoError(t, err)

	for k := 0; k < 500; k++ {
		drag := -float64(k) * 13.1
		for slot := 0; slot < 4; slot++ {
			_, _, err := m.Map(slot, drag)
			require.NoError(t, err)
			c := m.Correction(slot)
			assert.InDelta(t, 0, math.Mod(c+1, 10), 1e-9, "slot %d correction %v", slot, c)
		}
	}
}

func TestMapperModuloWindow(t *testing.T) {
	for _, width := range []float64{123, 200, 317.5} {
		m, err := NewMapper(5, width, WrapModulo)
		require.NoError(t, err)

		lo := -4 * width
		for k := -300; k <= 300; k++ {
			drag := float64(k) * 41.9
			for slot := 0; slot < 5; slot++ {
				eff, _, err := m.Map(slot, drag)
				require.NoError(t, err)
				assert.Greater(t, eff, lo)
				assert.LessOrEqual(t, eff, width)
			}
		}
	}
}

func TestMapperModuloMatchesAccumulateAtRest(t *testing.T) {
	acc, err := NewMapper(4, 200, WrapAccumulate)
	require.NoError(t, err)
	mod, err := NewMapper(4, 200, WrapModulo)
	require.NoError(t, err)

	for slot := 0; slot < 4; slot++ {
		a, _, err := acc.Map(slot, 0)
		require.NoError(t, err)
		b, _, err := mod.Map(slot, 0)
		require.NoError(t, err)
		assert.InDelta(t, b, a, 1, "slot %d", slot)
	}
}

func TestMapperSingleCardUsesDragOffset(t *testing.T) {
	m, err := NewMapper(1, 0, WrapAccumulate)
	require.NoError(t, err)

	eff, tr, err := m.Map(0, -120)
	require.NoError(t, err)
	assert.Equal(t, -120.0, eff)
	assert.Equal(t, ComputeTransform(-120), tr)
}

func TestMapperSlotOutOfRange(t *testing.T) {
	m, err := NewMapper(4, 200, WrapAccumulate)
	require.NoError(t, err)

	_, _, err = m.Map(4, 0)
	assert.Error(t, err)
}

func TestParseWrapMode(t *testing.T) {
	m, err := ParseWrapMode("")
	require.NoError(t, err)
	assert.Equal(t, WrapAccumulate, m)

	m, err = ParseWrapMode("modulo")
	require.NoError(t, err)
	assert.Equal(t, WrapModulo, m)

	_, err = ParseWrapMode("integer")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
