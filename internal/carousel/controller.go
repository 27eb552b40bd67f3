package carousel

import (
	"fmt"
	"math"
)

// State is the gesture/animation phase of a Controller.
type State int

const (
	Idle State = iota
	Dragging
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Direction is the sign applied to the resting slot on a completed swipe.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Curve names the easing a settle animation asks for.
type Curve int

const (
	// CurveStandard is the animator's default easing.
	CurveStandard Curve = iota
	// CurveDecelerate starts fast and eases into the target.
	CurveDecelerate
)

// Animation is an in-flight settle.
type Animation interface {
	// Cancel stops the animation and returns the last value it delivered.
	// No callbacks fire after Cancel returns.
	Cancel() float64
}

// Animator drives a value from one offset to another across frames.
// onFrame receives each interpolated value; onDone fires once, after the
// final onFrame, unless the animation was canceled.
type Animator interface {
	AnimateTo(from, to float64, c Curve, onFrame func(float64), onDone func()) Animation
}

// Event is delivered to subscribers whenever the offset or state changes.
type Event struct {
	State       State
	Offset      float64
	RestingSlot int
	Direction   Direction
}

// disabledPull is how far left a disabled carousel may be dragged.
const disabledPull = -150.0

// Controller owns the drag offset, the resting slot and the direction.
// It is not safe for concurrent use: gesture events and animator callbacks
// must arrive on the same goroutine.
type Controller struct {
	opts     Options
	animator Animator

	state       State
	offset      float64
	startOffset float64
	slot        int
	dir         Direction

	settle    Animation
	settleGen int

	listeners []func(Event)
}

// NewController validates opts for cardCount cards and returns an idle
// controller at slot 0. A nil animator settles instantly.
func NewController(opts Options, cardCount int, animator Animator) (*Controller, error) {
	if err := opts.Validate(cardCount); err != nil {
		return nil, err
	}
	return &Controller{
		opts:     opts,
		animator: animator,
		dir:      Right,
	}, nil
}

// Subscribe registers fn for every subsequent Event.
func (c *Controller) Subscribe(fn func(Event)) {
	c.listeners = append(c.listeners, fn)
}

// Start begins a drag. A settle in flight is canceled and its last value
// becomes the drag origin.
func (c *Controller) Start() {
	if c.state == Settling && c.settle != nil {
		last := c.settle.Cancel()
		c.settle = nil
		c.settleGen++
		Logger().Debug("settle preempted", "offset", last)
		c.offset = last
	}
	c.startOffset = c.offset
	c.setState(Dragging)
}

// Update moves the offset to the drag origin plus deltaX, which is relative
// to the start of the current gesture.
func (c *Controller) Update(deltaX float64) {
	if c.state != Dragging {
		Logger().Debug("update ignored", "state", c.state, "dx", deltaX)
		return
	}
	if c.opts.Disabled {
		deltaX = clamp(deltaX, disabledPull, 0)
	}
	c.offset = c.startOffset + deltaX
	c.notify()
}

// End releases the drag and starts the settle animation.
func (c *Controller) End(deltaX float64) {
	if c.state != Dragging {
		Logger().Debug("end ignored", "state", c.state, "dx", deltaX)
		return
	}

	if c.opts.Disabled {
		c.animateTo(c.target(), CurveStandard)
		return
	}

	if deltaX < 0 {
		c.dir = Right
	} else {
		c.dir = Left
	}
	if math.Abs(deltaX) > c.opts.ChangeThreshold {
		c.slot += int(c.dir)
	}
	c.animateTo(c.target(), CurveDecelerate)
}

func (c *Controller) target() float64 {
	return -(float64(c.slot) * c.opts.ItemWidth)
}

func (c *Controller) animateTo(target float64, cv Curve) {
	c.setState(Settling)
	if c.animator == nil {
		c.offset = target
		c.setState(Idle)
		return
	}

	c.settleGen++
	gen := c.settleGen
	c.settle = c.animator.AnimateTo(c.offset, target, cv,
		func(v float64) {
			if gen != c.settleGen {
				return
			}
			c.offset = v
			c.notify()
		},
		func() {
			if gen != c.settleGen {
				return
			}
			c.settle = nil
			c.setState(Idle)
		},
	)
}

func (c *Controller) setState(s State) {
	if c.state != s {
		Logger().Debug("carousel state", "from", c.state, "to", s, "offset", c.offset, "slot", c.slot)
	}
	c.state = s
	c.notify()
}

func (c *Controller) notify() {
	ev := c.Snapshot()
	for _, fn := range c.listeners {
		fn(ev)
	}
}

// Snapshot returns the current controller state as an Event.
func (c *Controller) Snapshot() Event {
	return Event{
		State:       c.state,
		Offset:      c.offset,
		RestingSlot: c.slot,
		Direction:   c.dir,
	}
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Offset returns the continuous drag offset.
func (c *Controller) Offset() float64 { return c.offset }

// RestingSlot returns the unbounded index of the centred slot.
func (c *Controller) RestingSlot() int { return c.slot }

// Direction returns the direction of the last release.
func (c *Controller) Direction() Direction { return c.dir }

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
