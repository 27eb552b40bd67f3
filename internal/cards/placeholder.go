package cards

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
)

// palette colours placeholder faces so neighbouring cards are told apart.
var palette = []string{"#e4572e", "#29335c", "#f3a712", "#669bbc", "#a8c686", "#8e5572", "#3d348b"}

// Placeholder draws a plain card face for card i: a rounded panel with an
// inner border and i+1 pips (cycling every five) along the top edge.
func Placeholder(i, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cards: placeholder size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	fw, fh := float64(w), float64(h)
	short := math.Min(fw, fh)
	radius := short * 0.08

	dc.SetHexColor(palette[i%len(palette)])
	dc.DrawRoundedRectangle(0, 0, fw, fh, radius)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("cards: placeholder %d: fill: %w", i, err)
	}

	lw := math.Max(short*0.02, 1)
	inset := lw * 3
	dc.SetRGBA(1, 1, 1, 0.6)
	dc.SetLineWidth(lw)
	dc.DrawRoundedRectangle(inset, inset, fw-2*inset, fh-2*inset, math.Max(radius-inset, 0))
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("cards: placeholder %d: stroke: %w", i, err)
	}

	pip := short * 0.04
	for k := 0; k <= i%5; k++ {
		dc.DrawCircle(inset*2+pip+float64(k)*pip*3, inset*2+pip, pip)
	}
	dc.SetRGBA(1, 1, 1, 0.9)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("cards: placeholder %d: pips: %w", i, err)
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("cards: placeholder %d: flush: %w", i, err)
	}
	return toNRGBA(dc.Image()), nil
}
