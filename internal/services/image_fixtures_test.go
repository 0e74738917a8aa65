package services

import (
	"bytes"
	"errors"
	"math/rand"
)

// memoryImage is an in-memory ImageReader used to exercise the detector
// without a real image file.
type memoryImage struct {
	data []byte
}

func (m *memoryImage) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(m.data).ReadAt(p, off)
}

func (m *memoryImage) Size() uint64 {
	return uint64(len(m.data))
}

var errDiskGone = errors.New("device not ready")

// brokenImage fails every read, simulating an invalid handle or a dead
// source device.
type brokenImage struct {
	size uint64
}

func (b *brokenImage) ReadAt(p []byte, off int64) (int, error) {
	return 0, errDiskGone
}

func (b *brokenImage) Size() uint64 {
	return b.size
}

// holeyImage fails reads at or past badFrom, simulating an image with an
// unreadable tail region.
type holeyImage struct {
	data    []byte
	badFrom int64
}

func (h *holeyImage) ReadAt(p []byte, off int64) (int, error) {
	if off >= h.badFrom {
		return 0, errDiskGone
	}
	return bytes.NewReader(h.data).ReadAt(p, off)
}

func (h *holeyImage) Size() uint64 {
	return uint64(len(h.data))
}

// randomBytes returns a deterministic pseudo-random buffer.
func randomBytes(size int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, size)
	rng.Read(buf)
	return buf
}
