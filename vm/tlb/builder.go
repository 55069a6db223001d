package tlb

import "github.com/sarchlab/vmsim/vm"

// A Builder can build translation caches.
type Builder struct {
	capacity int
}

// MakeBuilder returns a new Builder with default configurations.
func MakeBuilder() Builder {
	return Builder{
		capacity: 16,
	}
}

// WithCapacity sets the number of entries the cache can hold.
func (b Builder) WithCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// Build builds a new Comp.
func (b Builder) Build() *Comp {
	if b.capacity <= 0 {
		panic("tlb capacity must be positive")
	}

	return &Comp{
		capacity: b.capacity,
		frames:   make(map[vm.PageNum]int),
		queue:    make([]vm.PageNum, 0, b.capacity),
	}
}
