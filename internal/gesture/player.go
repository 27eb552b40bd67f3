package gesture

// MaxSettleFrames bounds how long Play keeps ticking after the last
// scripted frame while an animation is still running.
const MaxSettleFrames = 600

// Handler consumes gesture events.
type Handler interface {
	Start()
	Update(dx float64)
	End(dx float64)
}

// Ticker advances animations by one frame.
type Ticker interface {
	Tick()
	Idle() bool
}

// Play drives h and clock through tl on the calling goroutine. For each
// frame the gesture events are delivered first, then the clock ticks, then
// onFrame is called with the frame number. Frames continue past the end of
// the timeline until the clock is idle. Play returns the frame count.
func Play(tl Timeline, h Handler, clock Ticker, onFrame func(frame int)) int {
	frame := 0
	for ; frame < len(tl); frame++ {
		for _, ev := range tl[frame] {
			switch ev.Kind {
			case Start:
				h.Start()
			case Update:
				h.Update(ev.DX)
			case End:
				h.End(ev.DX)
			}
		}
		clock.Tick()
		if onFrame != nil {
			onFrame(frame)
		}
	}

	for extra := 0; !clock.Idle() && extra < MaxSettleFrames; extra++ {
		clock.Tick()
		if onFrame != nil {
			onFrame(frame)
		}
		frame++
	}
	return frame
}
