// Package mem provides the storage components of the simulator: the physical
// frame memory and the backing store that supplies page contents on demand.
package mem

import "errors"

// A Storage keeps the data held in physical memory.
//
// The storage is managed in fixed-size frames. A frame's content is replaced
// wholesale when a page is loaded into it; bytes are then read individually
// during translation.
type Storage struct {
	frameSize int
	frames    [][]byte
}

// NewStorage creates a Storage with the given number of frames, each
// frameSize bytes large.
func NewStorage(numFrames, frameSize int) *Storage {
	storage := &Storage{
		frameSize: frameSize,
		frames:    make([][]byte, numFrames),
	}

	for i := range storage.frames {
		storage.frames[i] = make([]byte, frameSize)
	}

	return storage
}

// NumFrames returns the number of frames in the storage.
func (s *Storage) NumFrames() int {
	return len(s.frames)
}

// FrameSize returns the number of bytes in each frame.
func (s *Storage) FrameSize() int {
	return s.frameSize
}

// WriteFrame replaces the content of a frame. The data must be exactly one
// frame long.
func (s *Storage) WriteFrame(frame int, data []byte) error {
	if frame < 0 || frame >= len(s.frames) {
		return errors.New("accessing frame beyond the storage capacity")
	}

	if len(data) != s.frameSize {
		return errors.New("data does not fill exactly one frame")
	}

	copy(s.frames[frame], data)

	return nil
}

// ReadByte returns the byte at the given offset within a frame.
func (s *Storage) ReadByte(frame, offset int) (byte, error) {
	if frame < 0 || frame >= len(s.frames) {
		return 0, errors.New("accessing frame beyond the storage capacity")
	}

	if offset < 0 || offset >= s.frameSize {
		return 0, errors.New("accessing byte beyond the frame boundary")
	}

	return s.frames[frame][offset], nil
}
