// File: internal/interfaces/image_reader.go
package interfaces

// ImageReader is the narrow capability the detector requires from the
// byte-addressable image abstraction. Implementations must be safe for
// concurrent reads if the detector is invoked from multiple goroutines.
type ImageReader interface {
	// ReadAt reads len(p) bytes starting at the absolute byte offset off.
	// It follows io.ReaderAt semantics: a read that reaches the end of
	// the image returns the bytes that exist together with io.EOF.
	ReadAt(p []byte, off int64) (int, error)

	// Size returns the total number of addressable bytes in the image.
	Size() uint64
}
