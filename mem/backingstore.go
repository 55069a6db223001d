package mem

import (
	"fmt"
	"os"
)

// A BackingStore is the fixed external image of all page data. It is read
// whole at open time and treated as read-only for the run's duration.
type BackingStore struct {
	numPages int
	pageSize int
	data     []byte
}

// NewBackingStore opens the page image at path. The file must hold exactly
// numPages pages of pageSize bytes each; a missing or truncated file is a
// configuration error, not something the translator can recover from later.
func NewBackingStore(path string, numPages, pageSize int) (*BackingStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backing store: %w", err)
	}

	wantSize := numPages * pageSize
	if len(data) != wantSize {
		return nil, fmt.Errorf(
			"backing store %s holds %d bytes, want exactly %d",
			path, len(data), wantSize)
	}

	return &BackingStore{
		numPages: numPages,
		pageSize: pageSize,
		data:     data,
	}, nil
}

// ReadPage returns a copy of the page's content, read at byte offset
// page*pageSize.
func (b *BackingStore) ReadPage(page int) ([]byte, error) {
	if page < 0 || page >= b.numPages {
		return nil, fmt.Errorf("backing store has no page %d", page)
	}

	start := page * b.pageSize
	data := make([]byte, b.pageSize)
	copy(data, b.data[start:start+b.pageSize])

	return data, nil
}
