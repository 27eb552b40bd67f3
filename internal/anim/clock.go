package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"stack-carousel/internal/carousel"
)

// DefaultDuration is the length of a timed settle.
const DefaultDuration = 300 * time.Millisecond

// DefaultFPS is used when a clock is created with a non-positive rate.
const DefaultFPS = 60

// Spring rest thresholds: a spring settle completes once it is within
// restDelta pixels of the target and slower than restSpeed pixels/second.
const (
	restDelta = 0.5
	restSpeed = 2.0
	// maxSpringFrames bounds an under-damped spring that never comes to rest.
	maxSpringFrames = 600
)

// Option configures a Clock.
type Option func(*Clock)

// WithDuration sets the length of timed animations.
func WithDuration(d time.Duration) Option {
	return func(c *Clock) { c.duration = d }
}

// WithSpring replaces timed animations with a damped spring.
// frequency is the angular frequency, damping the damping ratio.
func WithSpring(frequency, damping float64) Option {
	return func(c *Clock) {
		c.spring = &springParams{frequency: frequency, damping: damping}
	}
}

type springParams struct {
	frequency float64
	damping   float64
}

// Clock is a fixed-step animation driver. Each Tick advances every live
// animation by one frame and delivers its value. It implements
// carousel.Animator and, like the carousel, is driven from one goroutine.
type Clock struct {
	fps      int
	duration time.Duration
	spring   *springParams
	live     []*handle
}

// NewClock returns a clock ticking at fps frames per second.
func NewClock(fps int, opts ...Option) *Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	c := &Clock{fps: fps, duration: DefaultDuration}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FPS returns the tick rate.
func (c *Clock) FPS() int { return c.fps }

// FrameDuration returns the time covered by one Tick.
func (c *Clock) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.fps)
}

// Idle reports whether no animation is in flight.
func (c *Clock) Idle() bool {
	for _, h := range c.live {
		if !h.finished {
			return false
		}
	}
	return true
}

// AnimateTo starts an animation from from to to. Values are delivered on
// subsequent Ticks, never synchronously.
func (c *Clock) AnimateTo(from, to float64, cv carousel.Curve, onFrame func(float64), onDone func()) carousel.Animation {
	var s stepper
	if c.spring != nil {
		s = newSpringStepper(c.fps, *c.spring, from, to)
	} else {
		s = &timingStepper{
			from:     from,
			to:       to,
			frame:    c.FrameDuration(),
			duration: c.duration,
			easing:   EasingFor(cv),
		}
	}

	h := &handle{stepper: s, last: from, onFrame: onFrame, onDone: onDone}
	c.live = append(c.live, h)
	return h
}

// Tick advances all live animations by one frame.
func (c *Clock) Tick() {
	// Callbacks may start or cancel animations; iterate over a snapshot.
	live := append([]*handle(nil), c.live...)
	for _, h := range live {
		if h.finished {
			continue
		}
		v, done := h.stepper.step()
		h.last = v
		if h.onFrame != nil {
			h.onFrame(v)
		}
		if done && !h.finished {
			h.finished = true
			if h.onDone != nil {
				h.onDone()
			}
		}
	}

	n := 0
	for _, h := range c.live {
		if !h.finished {
			c.live[n] = h
			n++
		}
	}
	clear(c.live[n:])
	c.live = c.live[:n]
}

// EasingFor returns the easing used for a settle curve.
func EasingFor(cv carousel.Curve) Easing {
	if cv == carousel.CurveDecelerate {
		return Out(Ease)
	}
	return InOut(Quad)
}

type handle struct {
	stepper  stepper
	last     float64
	finished bool
	onFrame  func(float64)
	onDone   func()
}

// Cancel stops the animation and returns the last delivered value.
func (h *handle) Cancel() float64 {
	h.finished = true
	return h.last
}

type stepper interface {
	step() (value float64, done bool)
}

type timingStepper struct {
	from, to float64
	frame    time.Duration
	duration time.Duration
	elapsed  time.Duration
	easing   Easing
}

func (s *timingStepper) step() (float64, bool) {
	s.elapsed += s.frame
	p := 1.0
	if s.duration > 0 {
		p = math.Min(float64(s.elapsed)/float64(s.duration), 1)
	}
	if p >= 1 {
		return s.to, true
	}
	return s.from + (s.to-s.from)*s.easing(p), false
}

type springStepper struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	to     float64
	frames int
}

func newSpringStepper(fps int, p springParams, from, to float64) *springStepper {
	return &springStepper{
		spring: harmonica.NewSpring(harmonica.FPS(fps), p.frequency, p.damping),
		pos:    from,
		to:     to,
	}
}

func (s *springStepper) step() (float64, bool) {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.to)
	s.frames++
	if (math.Abs(s.pos-s.to) < restDelta && math.Abs(s.vel) < restSpeed) || s.frames >= maxSpringFrames {
		s.pos, s.vel = s.to, 0
		return s.to, true
	}
	return s.pos, false
}
