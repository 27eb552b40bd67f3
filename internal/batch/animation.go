package batch

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// WriteAnimation encodes images as a looping animated WebP at fps.
func WriteAnimation(path string, images []image.Image, fps int) error {
	if len(images) == 0 {
		return errors.New("batch: animation has no frames")
	}
	if fps <= 0 {
		return fmt.Errorf("batch: invalid fps %d", fps)
	}

	ms := uint(1000 / fps)
	if ms == 0 {
		ms = 1
	}
	ani := &nativewebp.Animation{
		Images:    images,
		Durations: make([]uint, len(images)),
		Disposals: make([]uint, len(images)),
	}
	for i := range images {
		ani.Durations[i] = ms
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	if err := nativewebp.EncodeAll(f, ani, nil); err != nil {
		f.Close()
		return fmt.Errorf("batch: encode animation: %w", err)
	}
	return f.Close()
}

// Images collects the rendered images of successful results in frame order.
func Images(results []Result) []image.Image {
	imgs := make([]image.Image, 0, len(results))
	for _, r := range results {
		if r.Success && r.Image != nil {
			imgs = append(imgs, r.Image)
		}
	}
	return imgs
}
