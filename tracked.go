package transform2

// Tracked holds a value together with a generation that advances whenever
// the value changes through Set, Update or Touch. Passes that react to
// changes keep their own Cursor per value.
type Tracked[T comparable] struct {
	value T
	gen   uint64
}

// NewTracked returns a Tracked at generation 1, so a value counts as
// changed the first time any pass looks at it.
func NewTracked[T comparable](v T) Tracked[T] {
	return Tracked[T]{value: v, gen: 1}
}

// Get returns the current value.
func (t *Tracked[T]) Get() T {
	return t.value
}

// Set stores v and advances the generation if v differs from the current
// value. It reports whether the generation moved.
func (t *Tracked[T]) Set(v T) bool {
	if v == t.value && t.gen != 0 {
		return false
	}
	t.value = v
	t.gen++
	return true
}

// Update applies fn to a copy of the value and stores the result with Set.
func (t *Tracked[T]) Update(fn func(*T)) bool {
	v := t.value
	fn(&v)
	return t.Set(v)
}

// Touch advances the generation without changing the value.
func (t *Tracked[T]) Touch() {
	t.gen++
}

// Generation returns the current generation. Zero means never set.
func (t *Tracked[T]) Generation() uint64 {
	return t.gen
}

// Cursor is the generation a pass last observed for one value.
type Cursor uint64

// Observe records gen and reports whether it differs from the last one seen.
func (c *Cursor) Observe(gen uint64) bool {
	if Cursor(gen) == *c {
		return false
	}
	*c = Cursor(gen)
	return true
}
