// Package vm provides the data structures for paged virtual memory: virtual
// address decomposition and the page table.
package vm

const (
	// PageSize is the number of bytes in a page. Frames have the same size.
	PageSize = 256

	// NumPages is the number of pages in the 16-bit virtual address space.
	NumPages = 256

	// MaxAddress is the largest translatable virtual address.
	MaxAddress = NumPages*PageSize - 1
)

// A VAddr is a 16-bit virtual address.
type VAddr uint16

// A PageNum identifies one of the NumPages virtual pages.
type PageNum uint8

// PageNumber returns the page that contains the address.
func (a VAddr) PageNumber() PageNum {
	return PageNum(a >> 8)
}

// Offset returns the position of the address within its page.
func (a VAddr) Offset() int {
	return int(a & 0xFF)
}
