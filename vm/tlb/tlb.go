// Package tlb provides a fully associative translation cache with
// first-in-first-out replacement.
package tlb

import (
	"github.com/sarchlab/vmsim/vm"
)

// A Comp is a translation cache. It holds a bounded number of page-to-frame
// mappings and evicts the earliest-inserted mapping when a new one is
// inserted at capacity. It never decides residency on its own; the page
// table stays authoritative and the owner must call Invalidate when a page
// loses its frame.
type Comp struct {
	capacity int
	frames   map[vm.PageNum]int
	queue    []vm.PageNum
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Comp) Capacity() int {
	return c.capacity
}

// Len returns the number of entries currently cached.
func (c *Comp) Len() int {
	return len(c.queue)
}

// Lookup returns the frame cached for the page. The bool return value
// indicates whether the page is cached.
func (c *Comp) Lookup(page vm.PageNum) (frame int, found bool) {
	frame, found = c.frames[page]
	return frame, found
}

// Insert caches a page-to-frame mapping, evicting the oldest entry first if
// the cache is full. Inserting a page that is already cached only updates
// its frame.
func (c *Comp) Insert(page vm.PageNum, frame int) {
	if _, found := c.frames[page]; found {
		c.frames[page] = frame
		return
	}

	if len(c.queue) == c.capacity {
		oldest := c.queue[0]
		c.queue = c.queue[1:]
		delete(c.frames, oldest)
	}

	c.frames[page] = frame
	c.queue = append(c.queue, page)
}

// Invalidate removes the entry for the page if one is cached. It is a no-op
// otherwise.
func (c *Comp) Invalidate(page vm.PageNum) {
	if _, found := c.frames[page]; !found {
		return
	}

	delete(c.frames, page)
	for i, p := range c.queue {
		if p == page {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			break
		}
	}
}
