package types

// SignatureEntry describes one known encrypted-container magic pattern:
// a fixed byte sequence expected at a fixed offset within the sampled
// window. Entries are data, not code; the matching logic never changes
// when the table grows.
type SignatureEntry struct {
	// Name is the human-readable format name, e.g. "BitLocker".
	Name string

	// PatternOffset is the offset of the pattern within the sample,
	// relative to the start of the sampled window.
	PatternOffset int

	// Pattern is the exact byte sequence that identifies the format.
	Pattern []byte
}

// MinSampleLength returns the minimum sample length at which this entry
// can possibly match.
func (e SignatureEntry) MinSampleLength() int {
	return e.PatternOffset + len(e.Pattern)
}

// SampleStatistics carries the extended randomness measurements for one
// sampled window. Entropy alone decides the verdict; the remaining fields
// are corroborating evidence for analyst-facing output.
type SampleStatistics struct {
	// Length is the number of bytes actually analyzed.
	Length int

	// Entropy is the Shannon entropy of the byte-value distribution,
	// in bits per byte, in [0, 8].
	Entropy float64

	// ChiSquare is the Pearson chi-square statistic of the byte-value
	// histogram against the uniform distribution (255 degrees of
	// freedom). Uniformly random data stays near 255.
	ChiSquare float64

	// SerialCorrelation is the largest absolute lag autocorrelation of
	// the byte values. Ciphertext shows values near zero.
	SerialCorrelation float64
}
