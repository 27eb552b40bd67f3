package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"stack-carousel/internal/carousel"
)

// Canvas describes the output frame and where the card box sits in it.
type Canvas struct {
	Width  int
	Height int
	// LeftMargin is the distance from the left edge to the card box.
	LeftMargin float64
	ItemWidth  float64
	// ItemHeight of zero fills the canvas height.
	ItemHeight float64
	Background color.NRGBA
	// Density multiplies translations; Scaled sets it for supersampling.
	Density float64
}

// Scaled returns the canvas with every length multiplied by k.
func (c Canvas) Scaled(k int) Canvas {
	f := float64(k)
	c.Width *= k
	c.Height *= k
	c.LeftMargin *= f
	c.ItemWidth *= f
	c.ItemHeight *= f
	c.Density = c.density() * f
	return c
}

func (c Canvas) density() float64 {
	if c.Density <= 0 {
		return 1
	}
	return c.Density
}

// CardBox returns the untransformed card rectangle, vertically centred.
func (c Canvas) CardBox() (x, y, w, h float64) {
	h = c.ItemHeight
	if h <= 0 || h > float64(c.Height) {
		h = float64(c.Height)
	}
	return c.LeftMargin, (float64(c.Height) - h) / 2, c.ItemWidth, h
}

// Layer is one card image with the transform to draw it with.
type Layer struct {
	Image     image.Image
	Transform carousel.Transform
}

// Compose draws layers in order over the background. The card image is
// stretched to the card box, translated by TranslateX and scaled about the
// box centre; Opacity is applied as a uniform source mask.
func Compose(c Canvas, layers []Layer) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)

	bx, by, bw, bh := c.CardBox()
	cx, cy := bx+bw/2, by+bh/2
	density := c.density()

	for _, l := range layers {
		t := l.Transform
		if l.Image == nil || t.Opacity <= 0 || t.Scale <= 0 {
			continue
		}
		sr := l.Image.Bounds()
		if sr.Empty() {
			continue
		}

		fx := bw / float64(sr.Dx())
		fy := bh / float64(sr.Dy())
		s := t.Scale
		tx := t.TranslateX * density

		m := f64.Aff3{
			s * fx, 0, cx + tx - s*bw/2 - s*fx*float64(sr.Min.X),
			0, s * fy, cy - s*bh/2 - s*fy*float64(sr.Min.Y),
		}

		var opts *draw.Options
		if t.Opacity < 1 {
			a := uint8(math.Round(t.Opacity * 255))
			opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: a})}
		}
		draw.BiLinear.Transform(dst, m, l.Image, sr, draw.Over, opts)
	}
	return dst
}
