// Package mmu implements the translator that resolves virtual addresses to
// physical bytes, paging from the backing store on demand and evicting
// resident pages first-in-first-out under memory pressure.
package mmu

import (
	"fmt"
	"sync"

	"github.com/sarchlab/vmsim/mem"
	"github.com/sarchlab/vmsim/vm"
	"github.com/sarchlab/vmsim/vm/tlb"
)

// A PageReader supplies the content of a virtual page. It is the MMU's view
// of the backing store.
type PageReader interface {
	ReadPage(page int) ([]byte, error)
}

// A Translation is the result of resolving one virtual address.
type Translation struct {
	VAddr     vm.VAddr
	PAddr     uint32
	Value     int8
	TLBHit    bool
	PageFault bool
}

// Comp is the translator. It owns the page table, the translation cache, the
// frame allocator and the physical storage, so that a frame eviction and the
// matching cache invalidation always happen as one step.
type Comp struct {
	pageReader PageReader
	pageTable  vm.PageTable
	tlb        *tlb.Comp
	storage    *mem.Storage
	frames     *frameAllocator

	statsLock sync.Mutex
	stats     Stats
}

// Translate resolves a virtual address to a physical address and the signed
// byte stored there. Every address in the 16-bit range is translatable; the
// only possible error is the backing store failing to supply a page, which
// is terminal for the run.
func (c *Comp) Translate(addr vm.VAddr) (Translation, error) {
	page := addr.PageNumber()
	offset := addr.Offset()

	trans := Translation{VAddr: addr}

	frame, found := c.tlb.Lookup(page)
	trans.TLBHit = found

	if !found {
		var err error
		frame, trans.PageFault, err = c.resolveThroughTable(page)
		if err != nil {
			return Translation{}, err
		}

		c.tlb.Insert(page, frame)
	}

	trans.PAddr = uint32(frame*c.storage.FrameSize() + offset)

	value, err := c.storage.ReadByte(frame, offset)
	if err != nil {
		panic(err)
	}
	trans.Value = int8(value)

	c.recordTranslation(trans)

	return trans, nil
}

// resolveThroughTable consults the page table and serves a page fault when
// the page is absent.
func (c *Comp) resolveThroughTable(
	page vm.PageNum,
) (frame int, faulted bool, err error) {
	if frame, found := c.pageTable.Find(page); found {
		return frame, false, nil
	}

	frame, err = c.servePageFault(page)
	if err != nil {
		return 0, false, err
	}

	return frame, true, nil
}

// servePageFault loads the page from the backing store into a frame, evicting
// a resident page first when all frames are occupied.
func (c *Comp) servePageFault(page vm.PageNum) (int, error) {
	data, err := c.pageReader.ReadPage(int(page))
	if err != nil {
		return 0, fmt.Errorf("serving fault on page %d: %w", page, err)
	}

	frame := c.allocateFrame()

	if err := c.storage.WriteFrame(frame, data); err != nil {
		panic(err)
	}

	c.pageTable.Insert(page, frame)
	c.frames.occupy(frame, page)

	return frame, nil
}

// allocateFrame returns a frame ready to receive a page. When every frame is
// occupied, it evicts the earliest-filled frame and removes the victim page
// from the page table and the translation cache in the same step, so no
// stale mapping can survive the eviction.
func (c *Comp) allocateFrame() int {
	if frame, ok := c.frames.takeFree(); ok {
		return frame
	}

	frame, victim := c.frames.evictOldest()
	c.pageTable.Remove(victim)
	c.tlb.Invalidate(victim)

	return frame
}

// NumFrames returns the number of physical frames.
func (c *Comp) NumFrames() int {
	return c.storage.NumFrames()
}

// TLBCapacity returns the capacity of the translation cache.
func (c *Comp) TLBCapacity() int {
	return c.tlb.Capacity()
}
