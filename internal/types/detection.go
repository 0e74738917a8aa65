// Package types implements data structures for encryption detection over
// forensic disk and volume images.
package types

// MaxDescriptionLength is the upper bound on DetectionResult.Description.
// It mirrors the library-wide error-string bound so a result can be copied
// verbatim into a fixed-size reporting field.
const MaxDescriptionLength = 1024

// DefaultWindowSize is the number of bytes sampled from the image per
// detection call. 128 sectors gives the entropy estimate enough data to be
// stable while keeping a single probe cheap.
const DefaultWindowSize = 65536

// DefaultEntropyThreshold is the Shannon entropy cutoff, in bits per byte,
// above which a sample with no recognized signature is classified as
// encryption-like. Ciphertext over a window of at least a few hundred bytes
// measures above 7.8 almost surely; filesystem metadata stays well below.
// 7.5 leaves headroom for sampling noise on short windows. Tunable via
// configuration; see disk.ImageConfig.
const DefaultEntropyThreshold = 7.5

// MaxEntropy is the theoretical maximum Shannon entropy of a byte stream,
// in bits per byte.
const MaxEntropy = 8.0

// DetectionResult is the verdict for a single image region. It is fully
// populated on every call path, including read failures, and is owned by
// the caller once returned.
type DetectionResult struct {
	// IsEncrypted is true when a container signature matched or the
	// entropy score exceeded the configured threshold.
	IsEncrypted bool

	// Description is a short human-readable explanation: the matched
	// format's name, the observed entropy score and verdict, or why the
	// region could not be read. Never longer than MaxDescriptionLength.
	Description string
}

// BoundDescription truncates s to MaxDescriptionLength. Descriptions are
// built as ordinary strings internally and bounded only at the result
// boundary.
func BoundDescription(s string) string {
	if len(s) > MaxDescriptionLength {
		return s[:MaxDescriptionLength]
	}
	return s
}
