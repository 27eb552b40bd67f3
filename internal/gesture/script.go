package gesture

import (
	"encoding/json"
	"fmt"
	"os"
)

// Step ops.
const (
	OpStart = "start"
	OpMove  = "move"
	OpEnd   = "end"
	OpWait  = "wait"
	OpSwipe = "swipe"
)

// Script is a recorded or hand-written sequence of pan gestures.
type Script struct {
	FPS   int    `json:"fps"`
	Steps []Step `json:"steps"`
}

// Step is one scripted action. DX is always relative to the start of the
// gesture it belongs to.
type Step struct {
	Op     string  `json:"op"`
	DX     float64 `json:"dx,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// Kind is the type of a gesture event.
type Kind int

const (
	Start Kind = iota
	Update
	End
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Update:
		return "update"
	case End:
		return "end"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is a gesture event delivered at the start of a frame.
type Event struct {
	Kind Kind
	DX   float64
}

// Timeline holds the events of each frame, indexed by frame number.
type Timeline [][]Event

// Load reads a JSON script from path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("gesture: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("gesture: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a JSON script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("gesture: parse: %w", err)
	}
	return s, nil
}

// Default returns the demo script: two forward swipes, a drag that falls
// short of the threshold, a swipe back, and a swipe interrupted mid-settle.
func Default() Script {
	return Script{
		FPS: 60,
		Steps: []Step{
			{Op: OpWait, Frames: 10},
			{Op: OpSwipe, DX: -140, Frames: 12},
			{Op: OpWait, Frames: 30},
			{Op: OpSwipe, DX: -120, Frames: 10},
			{Op: OpWait, Frames: 30},
			{Op: OpSwipe, DX: -50, Frames: 10},
			{Op: OpWait, Frames: 30},
			{Op: OpSwipe, DX: 160, Frames: 12},
			{Op: OpWait, Frames: 6},
			{Op: OpSwipe, DX: -200, Frames: 14},
			{Op: OpWait, Frames: 30},
		},
	}
}

// Compile expands the script into a per-frame timeline.
func (s Script) Compile() (Timeline, error) {
	var tl Timeline
	frame := 0
	at := func(f int) {
		for len(tl) <= f {
			tl = append(tl, nil)
		}
	}
	emit := func(ev Event) {
		at(frame)
		tl[frame] = append(tl[frame], ev)
	}

	active := false
	var last float64

	move := func(dx float64, frames int) {
		if frames < 1 {
			frames = 1
		}
		from := last
		for k := 1; k <= frames; k++ {
			last = from + (dx-from)*float64(k)/float64(frames)
			emit(Event{Kind: Update, DX: last})
			frame++
		}
	}

	for i, st := range s.Steps {
		if st.Frames < 0 {
			return nil, fmt.Errorf("gesture: step %d: negative frame count %d", i, st.Frames)
		}
		switch st.Op {
		case OpStart:
			if active {
				return nil, fmt.Errorf("gesture: step %d: start inside a gesture", i)
			}
			active, last = true, 0
			emit(Event{Kind: Start})
		case OpMove:
			if !active {
				return nil, fmt.Errorf("gesture: step %d: move outside a gesture", i)
			}
			move(st.DX, st.Frames)
		case OpEnd:
			if !active {
				return nil, fmt.Errorf("gesture: step %d: end outside a gesture", i)
			}
			emit(Event{Kind: End, DX: last})
			active = false
		case OpWait:
			frame += st.Frames
		case OpSwipe:
			if active {
				return nil, fmt.Errorf("gesture: step %d: swipe inside a gesture", i)
			}
			last = 0
			emit(Event{Kind: Start})
			move(st.DX, st.Frames)
			emit(Event{Kind: End, DX: last})
		default:
			return nil, fmt.Errorf("gesture: step %d: unknown op %q", i, st.Op)
		}
	}
	if active {
		return nil, fmt.Errorf("gesture: script ends inside a gesture")
	}

	if frame > 0 {
		at(frame - 1)
	}
	return tl, nil
}
