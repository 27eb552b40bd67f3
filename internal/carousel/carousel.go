package carousel

import (
	"cmp"
	"slices"
)

// Card is one rendered card instance for the current frame.
type Card[T any] struct {
	Slot      int
	Payload   T
	Effective float64
	Transform Transform
}

// Carousel is a mounted stack carousel: a padded card set, its controller
// and the per-slot wrap state. Like Controller it belongs to one goroutine.
type Carousel[T any] struct {
	opts   Options
	ctrl   *Controller
	mapper *Mapper
	frame  []Card[T]

	mapped   bool
	mappedAt float64
}

// New mounts a carousel over payloads. Configuration and card errors are
// reported here, before any gesture is processed.
func New[T any](payloads []T, opts Options, animator Animator) (*Carousel[T], error) {
	cards, err := Pad(payloads)
	if err != nil {
		return nil, err
	}

	ctrl, err := NewController(opts, len(cards), animator)
	if err != nil {
		return nil, err
	}

	mapper, err := NewMapper(len(cards), opts.ItemWidth, opts.Wrap)
	if err != nil {
		return nil, err
	}

	c := &Carousel[T]{
		opts:   opts,
		ctrl:   ctrl,
		mapper: mapper,
		frame:  make([]Card[T], len(cards)),
	}
	for i, p := range cards {
		c.frame[i] = Card[T]{Slot: i, Payload: p}
	}

	c.remap(ctrl.Offset())
	ctrl.Subscribe(func(ev Event) { c.remap(ev.Offset) })
	return c, nil
}

// remap runs the mapper for every slot when the offset has moved since the
// last mapped frame. If any slot fails the previous frame is kept.
func (c *Carousel[T]) remap(offset float64) {
	if c.mapped && offset == c.mappedAt {
		return
	}
	next := make([]Card[T], len(c.frame))
	for i, card := range c.frame {
		eff, t, err := c.mapper.Map(i, offset)
		if err != nil {
			Logger().Warn("frame dropped", "slot", i, "offset", offset, "error", err)
			return
		}
		card.Effective = eff
		card.Transform = t
		next[i] = card
	}
	c.frame = next
	c.mapped, c.mappedAt = true, offset
}

// Start forwards a gesture start to the controller.
func (c *Carousel[T]) Start() { c.ctrl.Start() }

// Update forwards a gesture move; deltaX is relative to the gesture start.
func (c *Carousel[T]) Update(deltaX float64) { c.ctrl.Update(deltaX) }

// End forwards a gesture release.
func (c *Carousel[T]) End(deltaX float64) { c.ctrl.End(deltaX) }

// Frame returns the cards in slot order for the current offset.
func (c *Carousel[T]) Frame() []Card[T] {
	return slices.Clone(c.frame)
}

// Ordered returns the cards in draw order: lowest stack order first, so
// the front card is drawn last.
func (c *Carousel[T]) Ordered() []Card[T] {
	out := c.Frame()
	slices.SortStableFunc(out, func(a, b Card[T]) int {
		return cmp.Compare(a.Transform.StackOrder, b.Transform.StackOrder)
	})
	return out
}

// Len returns the number of rendered cards after padding.
func (c *Carousel[T]) Len() int { return len(c.frame) }

// Options returns the options the carousel was mounted with.
func (c *Carousel[T]) Options() Options { return c.opts }

// Controller exposes the underlying controller for observers.
func (c *Carousel[T]) Controller() *Controller { return c.ctrl }
