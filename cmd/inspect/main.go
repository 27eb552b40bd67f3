package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"stack-carousel/internal/carousel"
)

func main() {
	count := flag.Int("count", 5, "Number of cards before padding")
	offset := flag.Float64("offset", 0, "Drag offset to inspect")
	width := flag.Float64("width", carousel.DefaultItemWidth, "Item width")
	step := flag.Float64("step", 10, "Drag step used to walk from 0 to the offset")
	wrap := flag.String("wrap", "accumulate", "Wrap mode: accumulate or modulo")
	flag.Parse()

	mode, err := carousel.ParseWrapMode(*wrap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *step <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -step must be positive")
		os.Exit(1)
	}

	slots := make([]int, *count)
	padded, err := carousel.Pad(slots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n := len(padded)

	mapper, err := carousel.NewMapper(n, *width, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	type row struct {
		correction, effective float64
		t                     carousel.Transform
	}
	rows := make([]row, n)

	// Corrections accumulate frame by frame, so walk the drag there and
	// report the last frame.
	frames := int(math.Ceil(math.Abs(*offset) / *step))
	for f := 0; f <= frames; f++ {
		d := *offset
		if f < frames {
			d = math.Copysign(float64(f)**step, *offset)
		}
		for slot := 0; slot < n; slot++ {
			eff, t, err := mapper.Map(slot, d)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: slot %d: %v\n", slot, err)
				os.Exit(1)
			}
			rows[slot] = row{correction: mapper.Correction(slot), effective: eff, t: t}
		}
	}

	fmt.Printf("Cards: %d (padded to %d), width %.0f, wrap %s, offset %.1f over %d frames\n",
		*count, n, *width, mapper.Mode(), *offset, frames+1)
	fmt.Printf("%4s  %10s  %10s  %8s  %6s  %10s  %6s\n",
		"slot", "correction", "effective", "opacity", "order", "translateX", "scale")
	for slot, r := range rows {
		fmt.Printf("%4d  %10.1f  %10.1f  %8.3f  %6.3f  %10.1f  %6.3f\n",
			slot, r.correction, r.effective, r.t.Opacity, r.t.StackOrder, r.t.TranslateX, r.t.Scale)
	}
}
