package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// maxCorrelationLag bounds the autocorrelation scan. Lags beyond a few
// dozen bytes add no discriminating power for ciphertext-vs-structure.
const maxCorrelationLag = 50

// SerialCorrelation returns the largest absolute lag autocorrelation of
// the byte values over lags 1..50, in [0, 1]. Ciphertext shows values
// near zero; repetitive or structured data correlates strongly with a
// shifted copy of itself. Samples too short to correlate score 0; a
// constant sample is perfectly predictable and scores 1.
func SerialCorrelation(sample []byte) float64 {
	if len(sample) < 4 {
		return 0
	}

	mean := meanByteValue(sample)
	centered := make([]float64, len(sample))
	constant := true
	for i, b := range sample {
		centered[i] = float64(b) - mean
		if b != sample[0] {
			constant = false
		}
	}
	if constant {
		return 1
	}

	maxLag := maxCorrelationLag
	if len(centered)-1 < maxLag {
		maxLag = len(centered) - 1
	}

	var peak float64
	for lag := 1; lag <= maxLag; lag++ {
		correlation, err := stats.Correlation(centered[lag:], centered[:len(centered)-lag])
		if err != nil {
			// Zero variance in one shifted view; no information at this lag.
			continue
		}
		if abs := math.Abs(correlation); abs > peak {
			peak = abs
		}
	}
	return peak
}

func meanByteValue(sample []byte) float64 {
	var sum float64
	for _, b := range sample {
		sum += float64(b)
	}
	return sum / float64(len(sample))
}
