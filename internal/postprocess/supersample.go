package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a premultiplied frame to w×h with CatmullRom filtering
// and returns it unpremultiplied. Filtering premultiplied pixels prevents
// dark halos at transparent edges.
func Downsample(img *image.RGBA, w, h int) *image.NRGBA {
	src := img
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		src = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(src, src.Bounds(), img, b, draw.Src, nil)
	}
	return Unpremultiply(src)
}

// Unpremultiply converts a premultiplied RGBA image to NRGBA.
func Unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	result := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := result.PixOffset(x, y)
			a := float64(img.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(img.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(img.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(img.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = img.Pix[si+3]
		}
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
