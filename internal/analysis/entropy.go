// Package analysis implements the statistical randomness measures used to
// classify image regions that carry no recognizable container signature.
//
// Known limitation: compressed-but-unencrypted data approaches maximal
// entropy and is indistinguishable from ciphertext by these measures
// alone. That is inherent to distribution-based detection; callers get a
// best-effort classification, not a proof.
package analysis

import (
	"math"

	"github.com/deploymenttheory/go-encdetect/internal/interfaces"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// analyzer implements the EntropyAnalyzer interface.
type analyzer struct{}

// Ensure interface compliance
var _ interfaces.EntropyAnalyzer = (*analyzer)(nil)

// NewAnalyzer creates a stateless EntropyAnalyzer. It holds no buffers and
// is safe for concurrent use.
func NewAnalyzer() interfaces.EntropyAnalyzer {
	return &analyzer{}
}

// histogram builds the 256-bucket byte-value frequency table.
func histogram(sample []byte) [256]int {
	var counts [256]int
	for _, b := range sample {
		counts[b]++
	}
	return counts
}

// Entropy returns the Shannon entropy of the byte-value distribution in
// bits per byte: -sum(p_i * log2(p_i)) over buckets with p_i > 0. An empty
// sample has entropy 0; there is nothing to classify.
func (a *analyzer) Entropy(sample []byte) float64 {
	if len(sample) == 0 {
		return 0
	}

	counts := histogram(sample)
	total := float64(len(sample))

	var entropy float64
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// Analyze returns the full randomness report for the sample.
func (a *analyzer) Analyze(sample []byte) types.SampleStatistics {
	return types.SampleStatistics{
		Length:            len(sample),
		Entropy:           a.Entropy(sample),
		ChiSquare:         ChiSquare(sample),
		SerialCorrelation: SerialCorrelation(sample),
	}
}
