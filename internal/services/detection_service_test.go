package services

import (
	"strings"
	"testing"

	"github.com/deploymenttheory/go-encdetect/internal/parsers/signature"
	"github.com/deploymenttheory/go-encdetect/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signatureImage builds an image of the given size whose window at
// windowStart begins with the named default signature's pattern.
func signatureImage(t *testing.T, name string, size int, windowStart int) *memoryImage {
	t.Helper()
	for _, entry := range signature.DefaultSignatures() {
		if entry.Name == name {
			data := make([]byte, size)
			copy(data[windowStart+entry.PatternOffset:], entry.Pattern)
			return &memoryImage{data: data}
		}
	}
	t.Fatalf("no default signature named %q", name)
	return nil
}

func TestDetectEncryptionSignatureMatch(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := signatureImage(t, "BitLocker", 4096, 0)

	result := service.DetectEncryption(image, 0)
	assert.True(t, result.IsEncrypted)
	assert.Equal(t, "BitLocker header detected", result.Description)
}

func TestDetectEncryptionAllDefaultSignatures(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})

	for _, entry := range signature.DefaultSignatures() {
		t.Run(entry.Name, func(t *testing.T) {
			image := signatureImage(t, entry.Name, 4096, 0)
			result := service.DetectEncryption(image, 0)
			require.True(t, result.IsEncrypted)
			assert.Contains(t, result.Description, entry.Name)
		})
	}
}

func TestDetectEncryptionSignatureAtVolumeOffset(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := signatureImage(t, "LUKS2", 8192, 4096)

	result := service.DetectEncryption(image, 4096)
	assert.True(t, result.IsEncrypted)
	assert.Equal(t, "LUKS2 header detected", result.Description)

	// The same image at offset 0 carries no signature and no entropy.
	result = service.DetectEncryption(image, 0)
	assert.False(t, result.IsEncrypted)
}

func TestDetectEncryptionSignatureBeatsLowEntropy(t *testing.T) {
	// A recognized header is reported by name even though a zero-filled
	// sector scores minimal entropy.
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := signatureImage(t, "FileVault", 512, 0)

	result := service.DetectEncryption(image, 0)
	assert.True(t, result.IsEncrypted)
	assert.Equal(t, "FileVault header detected", result.Description)
}

func TestDetectEncryptionAllZeroSample(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := &memoryImage{data: make([]byte, 4096)}

	result := service.DetectEncryption(image, 0)
	assert.False(t, result.IsEncrypted)
	assert.Contains(t, result.Description, "entropy 0.00 below threshold")
}

func TestDetectEncryptionRandomSample(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := &memoryImage{data: randomBytes(4096, 7)}

	result := service.DetectEncryption(image, 0)
	assert.True(t, result.IsEncrypted)
	assert.Contains(t, result.Description, "exceeds threshold")
}

func TestDetectEncryptionReadFailureFailsOpen(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})

	result := service.DetectEncryption(&brokenImage{size: 4096}, 0)
	assert.False(t, result.IsEncrypted)
	assert.Contains(t, result.Description, "unable to read image data at offset 0")
}

func TestDetectEncryptionOffsetPastEndFailsOpen(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := &memoryImage{data: make([]byte, 1024)}

	result := service.DetectEncryption(image, 1<<40)
	assert.False(t, result.IsEncrypted)
	assert.Contains(t, result.Description, "unable to read image data")
}

func TestDetectEncryptionNilImageFailsOpen(t *testing.T) {
	service := NewDetectionService(DetectionConfig{})

	result := service.DetectEncryption(nil, 0)
	assert.False(t, result.IsEncrypted)
	assert.Contains(t, result.Description, "unable to read image data")
}

func TestDetectEncryptionShortReadStillScored(t *testing.T) {
	// 2048 random bytes at the image tail: shorter than the window but
	// still enough to score as encryption-like.
	service := NewDetectionService(DetectionConfig{WindowSize: 4096})
	image := &memoryImage{data: randomBytes(6144, 8)}

	result := service.DetectEncryption(image, 4096)
	assert.True(t, result.IsEncrypted)
	assert.Contains(t, result.Description, "exceeds threshold")
}

func TestDetectEncryptionIdempotent(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})
	image := &memoryImage{data: randomBytes(8192, 9)}

	first := service.DetectEncryption(image, 2048)
	second := service.DetectEncryption(image, 2048)
	assert.Equal(t, first, second)
}

func TestDetectEncryptionCustomThreshold(t *testing.T) {
	image := &memoryImage{data: []byte(strings.Repeat("abcdefgh", 64))}

	strict := NewDetectionService(DetectionConfig{WindowSize: 512, EntropyThreshold: 2.5})
	result := strict.DetectEncryption(image, 0)
	assert.True(t, result.IsEncrypted)

	relaxed := NewDetectionService(DetectionConfig{WindowSize: 512, EntropyThreshold: 7.5})
	result = relaxed.DetectEncryption(image, 0)
	assert.False(t, result.IsEncrypted)
}

func TestDetectEncryptionInjectedTable(t *testing.T) {
	table := []types.SignatureEntry{
		{Name: "Test Container", PatternOffset: 4, Pattern: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}
	service := NewDetectionService(DetectionConfig{WindowSize: 512, Signatures: table})

	data := make([]byte, 512)
	copy(data[4:], table[0].Pattern)
	result := service.DetectEncryption(&memoryImage{data: data}, 0)
	assert.True(t, result.IsEncrypted)
	assert.Equal(t, "Test Container header detected", result.Description)

	// The default table must not leak into a service with an injected one.
	image := signatureImage(t, "BitLocker", 512, 0)
	result = service.DetectEncryption(image, 0)
	assert.False(t, result.IsEncrypted)
}

func TestDetectEncryptionDescriptionBounded(t *testing.T) {
	longName := strings.Repeat("X", 2*types.MaxDescriptionLength)
	table := []types.SignatureEntry{
		{Name: longName, PatternOffset: 0, Pattern: []byte{0x01, 0x02}},
	}
	service := NewDetectionService(DetectionConfig{WindowSize: 512, Signatures: table})

	data := make([]byte, 512)
	data[0], data[1] = 0x01, 0x02
	result := service.DetectEncryption(&memoryImage{data: data}, 0)
	assert.True(t, result.IsEncrypted)
	assert.Len(t, result.Description, types.MaxDescriptionLength)
}

func TestAnalyzeSampleStatistics(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 4096})
	image := &memoryImage{data: randomBytes(8192, 10)}

	report, err := service.AnalyzeSample(image, 0)
	require.NoError(t, err)
	assert.Equal(t, 4096, report.Length)
	assert.Greater(t, report.Entropy, 7.8)
	assert.Less(t, report.SerialCorrelation, 0.2)
}

func TestAnalyzeSampleReadFailure(t *testing.T) {
	service := NewDetectionService(DetectionConfig{WindowSize: 512})

	_, err := service.AnalyzeSample(&brokenImage{size: 512}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadFailure)
}
