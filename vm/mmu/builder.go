package mmu

import (
	"github.com/sarchlab/vmsim/mem"
	"github.com/sarchlab/vmsim/vm"
	"github.com/sarchlab/vmsim/vm/tlb"
)

// A Builder can build MMUs.
type Builder struct {
	numFrames   int
	tlbCapacity int
	pageReader  PageReader
}

// MakeBuilder returns a new Builder with default configurations.
func MakeBuilder() Builder {
	return Builder{
		numFrames:   128,
		tlbCapacity: 16,
	}
}

// WithNumFrames sets the number of physical frames. Eviction begins once all
// of them are filled.
func (b Builder) WithNumFrames(numFrames int) Builder {
	b.numFrames = numFrames
	return b
}

// WithTLBCapacity sets the capacity of the translation cache.
func (b Builder) WithTLBCapacity(capacity int) Builder {
	b.tlbCapacity = capacity
	return b
}

// WithPageReader sets the backing store the MMU pages from.
func (b Builder) WithPageReader(reader PageReader) Builder {
	b.pageReader = reader
	return b
}

// Build builds a new Comp.
func (b Builder) Build() *Comp {
	if b.pageReader == nil {
		panic("mmu requires a page reader")
	}

	if b.numFrames <= 0 {
		panic("mmu requires at least one frame")
	}

	return &Comp{
		pageReader: b.pageReader,
		pageTable:  vm.NewPageTable(),
		tlb:        tlb.MakeBuilder().WithCapacity(b.tlbCapacity).Build(),
		storage:    mem.NewStorage(b.numFrames, vm.PageSize),
		frames:     makeFrameAllocator(b.numFrames),
	}
}
