package volume

import "sync"

// DefaultMaxPoolElems is the largest backing slice a Pool keeps on Put.
// Slices above this are dropped so one oversized volume cannot pin memory
// for the lifetime of the pool.
const DefaultMaxPoolElems = 1 << 24

// Pool recycles volume backing storage across operations.
//
// Pipelines that repeatedly rasterize into same-shaped volumes can use a
// Pool to avoid re-allocating the grid on every sample. The zero value is
// ready to use.
type Pool[T Label] struct {
	// MaxElems caps the backing slices kept on Put.
	// Zero means DefaultMaxPoolElems.
	MaxElems int

	pool sync.Pool // stores *[]T
}

// Get returns a zero-filled volume with the given shape, reusing pooled
// storage when a large enough backing slice is available.
func (p *Pool[T]) Get(shape ...int) (*Volume[T], error) {
	n, err := Elems(shape...)
	if err != nil {
		return nil, err
	}

	var data []T
	if v, ok := p.pool.Get().(*[]T); ok && cap(*v) >= n {
		data = (*v)[:n]
		clear(data)
	} else {
		data = make([]T, n)
	}

	return FromData(data, shape...)
}

// Put returns a volume's backing storage to the pool.
//
// The volume must not be used afterwards; its data may be handed to the
// next Get. Passing nil is a no-op.
func (p *Pool[T]) Put(v *Volume[T]) {
	if v == nil {
		return
	}

	maxElems := p.MaxElems
	if maxElems <= 0 {
		maxElems = DefaultMaxPoolElems
	}
	if cap(v.data) > maxElems {
		return
	}

	data := v.data
	p.pool.Put(&data)
}
