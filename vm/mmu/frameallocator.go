package mmu

import "github.com/sarchlab/vmsim/vm"

// A frameAllocator tracks which frames are free, which page occupies each
// filled frame, and the order the frames were filled. The head of the fill
// order is always the next eviction victim.
type frameAllocator struct {
	free     []int
	queue    []int
	occupant []vm.PageNum
}

func makeFrameAllocator(numFrames int) *frameAllocator {
	a := &frameAllocator{
		free:     make([]int, numFrames),
		queue:    make([]int, 0, numFrames),
		occupant: make([]vm.PageNum, numFrames),
	}

	for i := range a.free {
		a.free[i] = i
	}

	return a
}

// takeFree pops the lowest-numbered free frame, if any.
func (a *frameAllocator) takeFree() (frame int, ok bool) {
	if len(a.free) == 0 {
		return 0, false
	}

	frame = a.free[0]
	a.free = a.free[1:]

	return frame, true
}

// evictOldest pops the earliest-filled frame from the fill order and returns
// it together with the page that occupied it. The caller must invalidate the
// victim's page table and translation cache entries before reusing the
// frame.
func (a *frameAllocator) evictOldest() (frame int, victim vm.PageNum) {
	if len(a.queue) == 0 {
		panic("no filled frame to evict")
	}

	frame = a.queue[0]
	a.queue = a.queue[1:]

	return frame, a.occupant[frame]
}

// occupy records that a page now lives in the frame and appends the frame to
// the fill order.
func (a *frameAllocator) occupy(frame int, page vm.PageNum) {
	a.occupant[frame] = page
	a.queue = append(a.queue, frame)
}
