package services

import (
	"fmt"

	"github.com/deploymenttheory/go-encdetect/internal/analysis"
	"github.com/deploymenttheory/go-encdetect/internal/interfaces"
	"github.com/deploymenttheory/go-encdetect/internal/parsers/signature"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// DetectionConfig carries the tunables for a DetectionService. Zero values
// select the documented defaults.
type DetectionConfig struct {
	// WindowSize is the number of bytes sampled per detection call.
	WindowSize int

	// EntropyThreshold is the bits-per-byte cutoff above which an
	// unrecognized sample is classified as encryption-like.
	EntropyThreshold float64

	// Signatures overrides the compiled-in signature table. Mainly for
	// tests that substitute smaller tables.
	Signatures []types.SignatureEntry
}

// DetectionService classifies image regions as encrypted or not. It is
// stateless across calls and safe for concurrent use provided the
// underlying image supports concurrent reads.
type DetectionService struct {
	reader    *SampleReader
	matcher   interfaces.SignatureMatcher
	analyzer  interfaces.EntropyAnalyzer
	threshold float64
}

// Ensure interface compliance
var _ interfaces.EncryptionDetector = (*DetectionService)(nil)

// NewDetectionService creates a DetectionService from the given config.
func NewDetectionService(config DetectionConfig) *DetectionService {
	threshold := config.EntropyThreshold
	if threshold <= 0 {
		threshold = types.DefaultEntropyThreshold
	}
	entries := config.Signatures
	if entries == nil {
		entries = signature.DefaultSignatures()
	}

	return &DetectionService{
		reader:    NewSampleReader(config.WindowSize),
		matcher:   signature.NewMatcher(entries),
		analyzer:  analysis.NewAnalyzer(),
		threshold: threshold,
	}
}

// EntropyThreshold returns the configured cutoff in bits per byte.
func (s *DetectionService) EntropyThreshold() float64 {
	return s.threshold
}

// DetectEncryption samples the image at the given absolute byte offset and
// returns a verdict. The sequence is fixed: read the window, test it
// against the signature table, and only when no signature matches score
// its entropy. A recognized container is reported by name even when its
// header entropy is low. Read failures and empty reads fail open to a
// non-encrypted verdict so a batch scan never aborts on one unreadable
// region.
func (s *DetectionService) DetectEncryption(image interfaces.ImageReader, offset int64) types.DetectionResult {
	sample, err := s.reader.ReadSample(image, offset)
	if err != nil {
		return types.DetectionResult{
			IsEncrypted: false,
			Description: types.BoundDescription(fmt.Sprintf("unable to read image data at offset %d: %v", offset, err)),
		}
	}

	if name, ok := s.matcher.Match(sample); ok {
		return types.DetectionResult{
			IsEncrypted: true,
			Description: types.BoundDescription(fmt.Sprintf("%s header detected", name)),
		}
	}

	score := s.analyzer.Entropy(sample)
	if score > s.threshold {
		return types.DetectionResult{
			IsEncrypted: true,
			Description: types.BoundDescription(fmt.Sprintf("entropy %.2f exceeds threshold %.2f", score, s.threshold)),
		}
	}

	return types.DetectionResult{
		IsEncrypted: false,
		Description: types.BoundDescription(fmt.Sprintf("entropy %.2f below threshold %.2f", score, s.threshold)),
	}
}

// AnalyzeSample returns the extended randomness statistics for the window
// at the given offset. Unlike DetectEncryption, read failures are returned
// to the caller; this path serves analyst-facing reporting, not the
// fail-open verdict contract.
func (s *DetectionService) AnalyzeSample(image interfaces.ImageReader, offset int64) (types.SampleStatistics, error) {
	sample, err := s.reader.ReadSample(image, offset)
	if err != nil {
		return types.SampleStatistics{}, err
	}
	return s.analyzer.Analyze(sample), nil
}
