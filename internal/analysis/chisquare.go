package analysis

// ChiSquare returns the Pearson chi-square statistic of the sample's
// byte-value histogram against the uniform distribution. With 255 degrees
// of freedom, uniformly random data stays near 255 while structured data
// grows by orders of magnitude. An empty sample scores 0.
func ChiSquare(sample []byte) float64 {
	if len(sample) == 0 {
		return 0
	}

	counts := histogram(sample)
	expected := float64(len(sample)) / 256

	var chiSquare float64
	for _, count := range counts {
		diff := float64(count) - expected
		chiSquare += diff * diff / expected
	}
	return chiSquare
}
