package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScanTestDetector() *DetectionService {
	return NewDetectionService(DetectionConfig{WindowSize: 4096})
}

func TestScanMixedImage(t *testing.T) {
	// Four 64 KiB regions: zeros, random, zeros, zeros.
	data := make([]byte, 4*65536)
	copy(data[65536:], randomBytes(65536, 11))
	image := &memoryImage{data: data}

	service := NewScanService(newScanTestDetector(), 65536, 0)
	report := service.Scan(image)

	require.Len(t, report.Regions, 4)
	assert.Equal(t, 1, report.EncryptedCount)
	assert.False(t, report.Regions[0].Result.IsEncrypted)
	assert.True(t, report.Regions[1].Result.IsEncrypted)
	assert.Equal(t, int64(65536), report.Regions[1].Offset)
	assert.Equal(t, uint64(len(data)), report.ImageSize)
}

func TestScanReportHasValidID(t *testing.T) {
	service := NewScanService(newScanTestDetector(), 65536, 0)
	report := service.Scan(&memoryImage{data: make([]byte, 65536)})

	_, err := uuid.Parse(report.ReportID)
	assert.NoError(t, err)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestScanUnreadableRegionDoesNotAbort(t *testing.T) {
	// The second half of the image is unreadable; the scan still
	// produces one verdict per region.
	data := make([]byte, 4*65536)
	image := &holeyImage{data: data, badFrom: 2 * 65536}

	service := NewScanService(newScanTestDetector(), 65536, 0)
	report := service.Scan(image)

	require.Len(t, report.Regions, 4)
	assert.Equal(t, 0, report.EncryptedCount)
	assert.Contains(t, report.Regions[2].Result.Description, "unable to read image data")
	assert.Contains(t, report.Regions[3].Result.Description, "unable to read image data")
}

func TestScanRegionLimit(t *testing.T) {
	image := &memoryImage{data: make([]byte, 10*65536)}

	service := NewScanService(newScanTestDetector(), 65536, 3)
	report := service.Scan(image)
	assert.Len(t, report.Regions, 3)
}

func TestScanEmptyImage(t *testing.T) {
	service := NewScanService(newScanTestDetector(), 65536, 0)
	report := service.Scan(&memoryImage{})
	assert.Empty(t, report.Regions)
	assert.Zero(t, report.EncryptedCount)
}

func TestScanNilImage(t *testing.T) {
	service := NewScanService(newScanTestDetector(), 65536, 0)
	report := service.Scan(nil)
	assert.Empty(t, report.Regions)
	assert.NotEmpty(t, report.ReportID)
}

func TestScanDefaultStride(t *testing.T) {
	service := NewScanService(newScanTestDetector(), 0, 0)
	report := service.Scan(&memoryImage{data: make([]byte, 3*DefaultScanStride)})
	assert.Equal(t, int64(DefaultScanStride), report.Stride)
	assert.Len(t, report.Regions, 3)
}
