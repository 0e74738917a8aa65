package services

import (
	"fmt"
	"io"

	"github.com/deploymenttheory/go-encdetect/internal/interfaces"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// SampleReader fetches fixed-size byte windows from an image for analysis.
// It performs no caching and no retries; retry policy, if any, belongs to
// the image implementation behind the ImageReader capability.
type SampleReader struct {
	windowSize int
}

// NewSampleReader creates a SampleReader with the given window size.
// Non-positive sizes fall back to types.DefaultWindowSize.
func NewSampleReader(windowSize int) *SampleReader {
	if windowSize <= 0 {
		windowSize = types.DefaultWindowSize
	}
	return &SampleReader{windowSize: windowSize}
}

// WindowSize returns the configured sample window size in bytes.
func (r *SampleReader) WindowSize() int {
	return r.windowSize
}

// ReadSample reads up to the window size starting at the given absolute
// byte offset. A window extending past the end of the image yields a
// short read with whatever bytes exist. A read that produces zero bytes,
// or any underlying I/O error, is reported as an error wrapping
// ErrReadFailure.
func (r *SampleReader) ReadSample(image interfaces.ImageReader, offset int64) ([]byte, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image handle is nil", ErrReadFailure)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrReadFailure, offset)
	}

	buf := make([]byte, r.windowSize)
	n, err := image.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: reading %d bytes at offset %d: %v", ErrReadFailure, r.windowSize, offset, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: no data at offset %d (image size %d)", ErrReadFailure, offset, image.Size())
	}

	return buf[:n], nil
}
