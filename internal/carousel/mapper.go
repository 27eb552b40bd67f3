package carousel

import (
	"fmt"
	"math"
)

// Transform is the visual state handed to the renderer for one card.
type Transform struct {
	Opacity    float64 `json:"opacity"`
	StackOrder float64 `json:"stack_order"`
	TranslateX float64 `json:"translate_x"`
	Scale      float64 `json:"scale"`
}

var (
	scaleCurve      = curve{xs: []float64{-200, 0, 200}, ys: []float64{0.85, 1, 1}}
	stackOrderCurve = curve{xs: []float64{-400, -200, 0}, ys: []float64{-1, 1, 2}}
	opacityCurve    = curve{xs: []float64{-600, 0, 200}, ys: []float64{0, 1, 1}}
	translateCurve  = curve{xs: []float64{-200, 0, 100, 200}, ys: []float64{-50, 0, 100, 400}}
)

// ComputeTransform maps a card's effective offset to its visual transform.
// Cards to the left shrink, fade and sink; cards past the centre are thrown
// off to the right at an accelerating rate.
func ComputeTransform(effective float64) Transform {
	return Transform{
		Opacity:    opacityCurve.at(effective),
		StackOrder: stackOrderCurve.at(effective),
		TranslateX: translateCurve.at(effective),
		Scale:      scaleCurve.at(effective),
	}
}

// WrapMode selects how a card's raw offset is folded back into the
// visible window.
type WrapMode int

const (
	// WrapAccumulate keeps a per-card correction that moves by one loop
	// width (±1px) whenever the card leaves the window, snapped to the
	// 10k-1 grid every frame.
	WrapAccumulate WrapMode = iota
	// WrapModulo folds the raw offset with modular arithmetic and keeps
	// no state between frames.
	WrapModulo
)

func (m WrapMode) String() string {
	switch m {
	case WrapAccumulate:
		return "accumulate"
	case WrapModulo:
		return "modulo"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(m))
	}
}

// ParseWrapMode parses "accumulate" or "modulo". Empty selects WrapAccumulate.
func ParseWrapMode(s string) (WrapMode, error) {
	switch s {
	case "", "accumulate":
		return WrapAccumulate, nil
	case "modulo":
		return WrapModulo, nil
	default:
		return 0, fmt.Errorf("%w: unknown wrap mode %q", ErrInvalidConfiguration, s)
	}
}

// Renormalize returns the card's new wrap correction for one frame.
//
// At most one correction step is applied per call, so it must run on every
// frame the drag offset changes: the returned value feeds back into the
// next frame's raw offset. With fewer than two cards the prior correction
// is returned unchanged.
func Renormalize(cardIndex, cardCount int, dragOffset, itemWidth, prior float64) (float64, error) {
	if cardCount < 2 {
		return prior, nil
	}
	if err := checkWidth(itemWidth); err != nil {
		return prior, err
	}

	loop := float64(cardCount) * itemWidth
	raw := -float64(cardIndex)*itemWidth + dragOffset + prior

	correction := prior
	if raw >= itemWidth {
		correction -= loop - 1
	} else if raw <= -float64(cardCount-1)*itemWidth {
		correction += loop + 1
	}

	// Keep the accumulator on the 10k-1 grid so drift stays within ±1px.
	return math.Round(correction/10)*10 - 1, nil
}

// ModuloOffset folds a raw offset into (-(cardCount-1)*itemWidth, itemWidth].
func ModuloOffset(cardIndex, cardCount int, dragOffset, itemWidth float64) (float64, error) {
	if cardCount < 2 {
		return dragOffset, nil
	}
	if err := checkWidth(itemWidth); err != nil {
		return 0, err
	}

	loop := float64(cardCount) * itemWidth
	raw := -float64(cardIndex)*itemWidth + dragOffset
	d := math.Mod(itemWidth-raw, loop)
	if d < 0 {
		d += loop
	}
	if d >= loop {
		d -= loop
	}
	return itemWidth - d, nil
}

func checkWidth(itemWidth float64) error {
	if itemWidth <= 0 || math.IsNaN(itemWidth) || math.IsInf(itemWidth, 0) {
		return fmt.Errorf("%w: item width %v must be positive with two or more cards", ErrInvalidConfiguration, itemWidth)
	}
	return nil
}

// Mapper owns the wrap corrections of a fixed set of render slots.
type Mapper struct {
	count       int
	width       float64
	mode        WrapMode
	corrections []float64
}

// NewMapper creates a mapper for count render slots of the given width.
func NewMapper(count int, itemWidth float64, mode WrapMode) (*Mapper, error) {
	if count >= 2 {
		if err := checkWidth(itemWidth); err != nil {
			return nil, err
		}
	}
	if mode == WrapAccumulate && count >= 2 && !onGrid(float64(count)*itemWidth) {
		Logger().Warn("wrap loop is not a multiple of 10, using modulo wrap",
			"cards", count, "item_width", itemWidth, "loop", float64(count)*itemWidth)
		mode = WrapModulo
	}
	m := &Mapper{
		count:       count,
		width:       itemWidth,
		mode:        mode,
		corrections: make([]float64, count),
	}
	// Start on the 10k-1 grid so the first frame is not shifted after the
	// window check.
	for i := range m.corrections {
		m.corrections[i] = -1
	}
	return m, nil
}

// Map renormalizes slot against dragOffset and returns its effective offset
// and transform. The slot's correction is updated in place.
func (m *Mapper) Map(slot int, dragOffset float64) (float64, Transform, error) {
	if slot < 0 || slot >= m.count {
		return 0, Transform{}, fmt.Errorf("carousel: slot %d out of range [0,%d)", slot, m.count)
	}
	if m.count < 2 {
		return dragOffset, ComputeTransform(dragOffset), nil
	}

	var effective float64
	switch m.mode {
	case WrapModulo:
		eff, err := ModuloOffset(slot, m.count, dragOffset, m.width)
		if err != nil {
			return 0, Transform{}, err
		}
		effective = eff
	default:
		prior := m.corrections[slot]
		next, err := Renormalize(slot, m.count, dragOffset, m.width, prior)
		if err != nil {
			return 0, Transform{}, err
		}
		base := -float64(slot)*m.width + dragOffset
		// A card resting exactly on the right edge is still inside the
		// window, but the grid snap would land its wrap on the excluded
		// left edge.
		if !m.inWindow(base+next) && m.inWindow(base+prior) {
			next = prior
		}
		if math.Abs(next-prior) > m.width {
			Logger().Debug("card wrapped", "slot", slot, "from", prior, "to", next)
		}
		m.corrections[slot] = next
		effective = base + next
	}
	return effective, ComputeTransform(effective), nil
}

// Correction returns the current wrap correction of slot.
func (m *Mapper) Correction(slot int) float64 {
	return m.corrections[slot]
}

// Mode returns the wrap mode in use. An accumulate request is served in
// modulo mode when the loop width is off the 10px grid.
func (m *Mapper) Mode() WrapMode { return m.mode }

func (m *Mapper) inWindow(effective float64) bool {
	return effective > -float64(m.count-1)*m.width && effective <= m.width
}

// onGrid reports whether loop is a whole multiple of 10, the step the
// accumulator snaps to.
func onGrid(loop float64) bool {
	r := math.Mod(loop, 10)
	return r < 1e-9 || 10-r < 1e-9
}
