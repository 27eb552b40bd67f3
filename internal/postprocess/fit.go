package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// TrimAlpha crops fully transparent rows and columns from the edges of img.
// Images with no opaque pixels are returned unchanged.
func TrimAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	if maxX < 0 || (minX == 0 && minY == 0 && maxX == w-1 && maxY == h-1) {
		return img
	}

	cropW := maxX - minX + 1
	cropH := maxY - minY + 1
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := (minY+y)*img.Stride + minX*4
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped
}

// Fit scales img to fit inside w×h keeping its aspect ratio and centres it
// on a transparent canvas of exactly that size.
func Fit(img *image.NRGBA, w, h int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 || w <= 0 || h <= 0 {
		return canvas
	}

	// Scale to the tighter of the two axes
	scaleF := min(float64(w)/float64(srcW), float64(h)/float64(srcH))
	newW := max(int(float64(srcW)*scaleF+0.5), 1)
	newH := max(int(float64(srcH)*scaleF+0.5), 1)

	offX := (w - newW) / 2
	offY := (h - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	draw.CatmullRom.Scale(canvas, dr, img, b, draw.Src, nil)
	return canvas
}
