// File: internal/interfaces/detection.go
package interfaces

import (
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// SignatureMatcher tests a sampled window against a table of known
// encrypted-container signatures.
type SignatureMatcher interface {
	// Match returns the name of the first matching signature in table
	// order, or ("", false) when no entry matches. Deterministic and
	// free of side effects.
	Match(sample []byte) (string, bool)

	// Entries returns the table the matcher was built with.
	Entries() []types.SignatureEntry
}

// EntropyAnalyzer computes randomness measures over a sampled window.
type EntropyAnalyzer interface {
	// Entropy returns the Shannon entropy of the byte-value
	// distribution in bits per byte, in [0, 8]. An empty sample has
	// entropy 0.
	Entropy(sample []byte) float64

	// Analyze returns the full set of randomness statistics for the
	// sample, including the corroborating chi-square and serial
	// correlation measures.
	Analyze(sample []byte) types.SampleStatistics
}

// EncryptionDetector classifies an image region as encrypted or not.
type EncryptionDetector interface {
	// DetectEncryption samples the image at the given absolute byte
	// offset and returns a fully populated verdict. It never returns an
	// error: read failures are absorbed into a non-encrypted verdict
	// with an explanatory description.
	DetectEncryption(image ImageReader, offset int64) types.DetectionResult
}
