package vm

// A PageTable records, for every virtual page, the frame that currently
// holds it. It is the sole source of truth for residency. Whoever removes an
// entry is responsible for invalidating any cached copy of it.
type PageTable interface {
	Insert(page PageNum, frame int)
	Remove(page PageNum)
	Find(page PageNum) (frame int, found bool)
	ResidentPages() []PageNum
}

// NewPageTable creates a PageTable with all NumPages entries absent.
func NewPageTable() PageTable {
	t := &pageTableImpl{}
	for i := range t.frames {
		t.frames[i] = frameAbsent
	}

	return t
}

const frameAbsent = -1

// pageTableImpl is the default implementation of a PageTable. The virtual
// address space is small and fixed, so entries live in a flat array indexed
// by page number.
type pageTableImpl struct {
	frames [NumPages]int
}

// Insert marks a page resident in the given frame.
func (t *pageTableImpl) Insert(page PageNum, frame int) {
	t.pageMustBeAbsent(page)

	t.frames[page] = frame
}

// Remove marks a page absent.
func (t *pageTableImpl) Remove(page PageNum) {
	t.pageMustBeResident(page)

	t.frames[page] = frameAbsent
}

// Find returns the frame holding the page. The bool return value indicates
// whether the page is resident.
func (t *pageTableImpl) Find(page PageNum) (int, bool) {
	frame := t.frames[page]
	if frame == frameAbsent {
		return 0, false
	}

	return frame, true
}

// ResidentPages lists the pages currently marked resident, in page-number
// order.
func (t *pageTableImpl) ResidentPages() []PageNum {
	pages := []PageNum{}
	for i, frame := range t.frames {
		if frame != frameAbsent {
			pages = append(pages, PageNum(i))
		}
	}

	return pages
}

func (t *pageTableImpl) pageMustBeResident(page PageNum) {
	if t.frames[page] == frameAbsent {
		panic("page is not resident")
	}
}

func (t *pageTableImpl) pageMustBeAbsent(page PageNum) {
	if t.frames[page] != frameAbsent {
		panic("page is already resident")
	}
}
