package loop

// Bus fans host events out to subscribed listeners. Emit calls run the
// listeners synchronously on the caller's goroutine.
type Bus struct {
	next   int
	resize map[int]func(w, h float64)
	move   map[int]func(x, y float64)
	leave  map[int]func()
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{
		resize: make(map[int]func(w, h float64)),
		move:   make(map[int]func(x, y float64)),
		leave:  make(map[int]func()),
	}
}

func (b *Bus) id() int {
	b.next++
	return b.next
}

func (b *Bus) OnResize(fn func(w, h float64)) func() {
	id := b.id()
	b.resize[id] = fn
	return func() { delete(b.resize, id) }
}

func (b *Bus) OnPointerMove(fn func(x, y float64)) func() {
	id := b.id()
	b.move[id] = fn
	return func() { delete(b.move, id) }
}

func (b *Bus) OnPointerLeave(fn func()) func() {
	id := b.id()
	b.leave[id] = fn
	return func() { delete(b.leave, id) }
}

func (b *Bus) EmitResize(w, h float64) {
	for _, fn := range b.resize {
		fn(w, h)
	}
}

func (b *Bus) EmitPointerMove(x, y float64) {
	for _, fn := range b.move {
		fn(x, y)
	}
}

func (b *Bus) EmitPointerLeave() {
	for _, fn := range b.leave {
		fn()
	}
}

// Listeners returns the number of subscribed listeners of every kind.
func (b *Bus) Listeners() int {
	return len(b.resize) + len(b.move) + len(b.leave)
}
